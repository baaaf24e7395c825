// api/billing/billing.go
package billing

import (
	"net/http"

	"campus/pkg/response"
	"campus/repository"
	"campus/service/billing"

	"github.com/gin-gonic/gin"
)

// ListArticles 获取商品目录
func ListArticles(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "未获取到用户ID")
		return
	}

	billingService := billing.NewBillingService(repository.GetDB())
	result, err := billingService.ListArticles()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ListInvoices 获取发票列表
func ListInvoices(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "未获取到用户ID")
		return
	}

	billingService := billing.NewBillingService(repository.GetDB())
	result, err := billingService.ListInvoices()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c, http.StatusOK, result)
}
