// api/auth/auth.go
package auth

import (
	"campus/pkg/response"
	"campus/repository"
	"campus/service/auth"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 处理登录请求
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "请求体格式无效")
		return
	}

	authService := auth.NewAuthService(repository.GetDB())
	result, err := authService.Login(req.Email, req.Password)
	if err != nil {
		response.Error(c, 401, err.Error())
		return
	}

	response.Success(c, 200, result)
}

// Register 处理注册请求
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "请求体格式无效")
		return
	}

	authService := auth.NewAuthService(repository.GetDB())
	result, err := authService.Register(req.Email, req.Password)
	if err != nil {
		response.Error(c, 400, err.Error())
		return
	}

	response.Success(c, 200, result)
}
