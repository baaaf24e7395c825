// api/member/member.go
package member

import (
	"net/http"

	"campus/pkg/response"
	"campus/repository"
	"campus/service/member"

	"github.com/gin-gonic/gin"
)

// VacateRequest 强制迁出请求结构
type VacateRequest struct {
	RoomID uint `json:"room_id" binding:"required"`
}

// List 获取成员列表
func List(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "未获取到用户ID")
		return
	}

	memberService := member.NewMemberService(repository.GetDB())
	result, err := memberService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Vacate 强制迁出房间占用者
func Vacate(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "未获取到用户ID")
		return
	}

	var req VacateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "请求参数无效:"+err.Error())
		return
	}

	memberService := member.NewMemberService(repository.GetDB())
	vacated, err := memberService.VacateRoom(req.RoomID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	if vacated == "" {
		response.Success(c, http.StatusOK, "房间无人占用")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vacated": vacated})
}
