// routes/auth.go
package routes

import (
	"campus/api/auth"
	"campus/api/password"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册无需认证的路由
func RegisterAuthRoutes(router *gin.Engine) {
	router.POST("/login", auth.Login)
	router.POST("/register", auth.Register)

	// 密码重置接口，导入流程会回调此接口
	router.POST("/password/reset", password.Reset)
}
