// api/batchimport/import.go
package batchimport

import (
	"net/http"

	"campus/model"
	"campus/pkg/response"
	"campus/repository"
	"campus/service/batchimport"

	"github.com/gin-gonic/gin"
)

// ImportRequest 导入请求结构
type ImportRequest struct {
	Content   string               `json:"content" binding:"required"`   // CSV内容
	SchoolID  uint                 `json:"school_id" binding:"required"` // 所有成员归属的学校ID
	PaymentID uint                 `json:"payment_id"`                   // 商品清单的支付方式ID
	Comment   string               `json:"comment"`                      // 批次备注
	Articles  []model.ArticleOrder `json:"articles"`                     // 附加到每个成员的商品清单
}

// ImportMembers 处理成员批量导入请求
func ImportMembers(c *gin.Context) {
	// 从 context 获取操作员ID
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "未获取到用户ID")
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "请求体格式无效")
		return
	}

	importService := batchimport.NewImportService(repository.GetDB())
	result, err := importService.ImportContent(req.Content, model.ImportOptions{
		SchoolID:  req.SchoolID,
		PaymentID: req.PaymentID,
		Comment:   req.Comment,
		Articles:  req.Articles,
	})
	if err != nil {
		// 导入失败时整批已回滚
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}
