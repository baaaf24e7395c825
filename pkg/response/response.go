// pkg/response/response.go
package response

import (
	"github.com/gin-gonic/gin"
)

// Body 统一响应结构
type Body struct {
	Code int         `json:"code"`           // 状态码
	Msg  string      `json:"msg,omitempty"`  // 错误消息
	Data interface{} `json:"data,omitempty"` // 响应数据
}

// Success 返回成功响应
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Body{
		Code: code,
		Data: data,
	})
}

// Error 返回错误响应
func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, Body{
		Code: code,
		Msg:  msg,
	})
}
