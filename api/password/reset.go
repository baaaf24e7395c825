// api/password/reset.go
package password

import (
	"net/http"

	"campus/model"
	"campus/pkg/logger"
	"campus/pkg/response"
	"campus/pkg/tg"
	"campus/repository"

	"github.com/gin-gonic/gin"
)

// ResetRequest 密码重置请求结构，支持表单和JSON两种提交方式
type ResetRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required"`
}

// Reset 处理密码重置请求
// 用户名和邮箱匹配时生成带过期时间的重置令牌
func Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "请求参数无效")
		return
	}

	if _, err := model.IssueResetToken(repository.GetDB(), req.Username, req.Email); err != nil {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}

	logger.Info("已为成员%s生成密码重置令牌", req.Username)

	// TG通知管理员，失败不影响重置流程
	if client, err := tg.GetClient(); err == nil {
		if err := client.SendResetNotice(req.Username); err != nil {
			logger.Error("密码重置TG通知失败: %v", err)
		}
	}

	response.Success(c, http.StatusOK, gin.H{"username": req.Username})
}
