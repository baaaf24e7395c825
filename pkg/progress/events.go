// pkg/progress/events.go
package progress

import (
	"time"
)

// ImportEvent 导入进度事件类型
type ImportEvent string

const (
	ImportStarted    ImportEvent = "导入开始"
	UsernamesChecked ImportEvent = "用户名检查完成"
	MembersCreated   ImportEvent = "成员创建完成"
	ResetsSent       ImportEvent = "密码重置完成"
	InvoicesCreated  ImportEvent = "发票创建完成"
	ImportFinished   ImportEvent = "导入完成"
	ImportFailed     ImportEvent = "导入失败"
)

// Event 推送到前端的进度事件
type Event struct {
	Type   ImportEvent `json:"type"`             // 事件类型
	Detail string      `json:"detail,omitempty"` // 事件详情
	Count  int         `json:"count"`            // 关联数量
	Time   time.Time   `json:"time"`             // 事件时间
}

// Publish 发布一条导入进度事件
// Hub 未初始化时（例如一次性导入脚本）静默丢弃
func Publish(eventType ImportEvent, detail string, count int) {
	hub := GetHub()
	if hub == nil {
		return
	}
	hub.Broadcast(Event{
		Type:   eventType,
		Detail: detail,
		Count:  count,
		Time:   time.Now(),
	})
}
