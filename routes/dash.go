// routes/dash.go
package routes

import (
	"campus/api/batchimport"
	"campus/api/billing"
	"campus/api/member"
	"campus/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterDashRoutes 注册需要认证的后台路由
func RegisterDashRoutes(router *gin.Engine) {
	authRequired := router.Group("")
	authRequired.Use(middleware.JWTAuthMiddleware())
	{
		// 批量导入路由
		authRequired.POST("/import", batchimport.ImportMembers)

		// 成员管理路由组
		memberGroup := authRequired.Group("/member")
		{
			memberGroup.GET("/list", member.List)
			memberGroup.POST("/vacate", member.Vacate) // 强制迁出房间占用者
		}

		// 计费路由组
		billingGroup := authRequired.Group("/billing")
		{
			billingGroup.GET("/articles", billing.ListArticles)
			billingGroup.GET("/invoices", billing.ListInvoices)
		}
	}
}
