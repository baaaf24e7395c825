// model/member.go
package model

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// 重置令牌有效期
const ResetTokenTTL = 24 * time.Hour

// 成员状态常量
const (
	MemberStateDisabled uint8 = 0 // 已停用
	MemberStateActive   uint8 = 1 // 正常

	EmailStateUnverified uint8 = 0 // 邮箱未验证
	EmailStateVerified   uint8 = 1 // 邮箱已验证
)

// School 学校模型
type School struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);unique;not null" json:"name"` // 学校名称
}

// TableName 指定表名
func (School) TableName() string {
	return "schools"
}

// Member 成员模型
type Member struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	FirstName    string     `gorm:"type:varchar(255);not null" json:"first_name"`      // 名字
	LastName     string     `gorm:"type:varchar(255);not null" json:"last_name"`       // 姓氏
	Username     string     `gorm:"type:varchar(255);unique;not null" json:"username"` // 用户名（邮箱本地部分生成）
	Email        string     `gorm:"type:varchar(255);not null" json:"email"`           // 邮箱
	SchoolID     uint       `gorm:"not null" json:"school_id"`                         // 学校ID
	School       School     `json:"school"`
	RoomID       *uint      `gorm:"default:null" json:"room_id"` // 房间ID（可为空）
	Room         *Room      `json:"room,omitempty"`
	Comment      string     `gorm:"type:varchar(255)" json:"comment"`                      // 备注（批次标记）
	State        uint8      `gorm:"type:tinyint(1);default:1;not null" json:"state"`       // 账号状态
	EmailState   uint8      `gorm:"type:tinyint(1);default:0;not null" json:"email_state"` // 邮箱验证状态
	ResetToken   *string    `gorm:"type:varchar(255);default:null" json:"-"`               // 密码重置令牌
	ResetExpires *time.Time `gorm:"type:timestamp;default:null" json:"-"`                  // 重置令牌过期时间
	CreateTime   *time.Time `gorm:"type:timestamp;default:null" json:"create_time"`        // 创建时间
}

// TableName 指定表名
func (Member) TableName() string {
	return "members"
}

// String 成员的字符串表示，用于日志输出
func (m *Member) String() string {
	return fmt.Sprintf("%s (%s %s) - %s", m.Username, m.FirstName, m.LastName, m.Email)
}

// UsernameTaken 检查用户名是否已被占用
func UsernameTaken(db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.Model(&Member{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetSchool 根据ID获取学校
func GetSchool(db *gorm.DB, id uint) (*School, error) {
	var school School
	if err := db.First(&school, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("学校不存在: id=%d", id)
		}
		return nil, err
	}
	return &school, nil
}

// GetMemberByUsername 根据用户名获取成员
func GetMemberByUsername(db *gorm.DB, username string) (*Member, error) {
	var member Member
	if err := db.Where("username = ?", username).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("成员不存在: %s", username)
		}
		return nil, err
	}
	return &member, nil
}

// IssueResetToken 为成员生成带过期时间的密码重置令牌
// 用户名和邮箱必须匹配
func IssueResetToken(db *gorm.DB, username, email string) (string, error) {
	member, err := GetMemberByUsername(db, username)
	if err != nil {
		return "", err
	}
	if member.Email != email {
		return "", fmt.Errorf("用户名和邮箱不匹配: %s", username)
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	expires := time.Now().Add(ResetTokenTTL)

	if err := db.Model(member).Updates(map[string]interface{}{
		"reset_token":   token,
		"reset_expires": expires,
	}).Error; err != nil {
		return "", err
	}
	return token, nil
}

// VacateRoom 强制迁出房间的当前占用者，返回被迁出成员的用户名
// 房间无人占用时返回空字符串
func VacateRoom(db *gorm.DB, roomID uint) (string, error) {
	var occupants []Member
	if err := db.Where("room_id = ?", roomID).Find(&occupants).Error; err != nil {
		return "", err
	}
	if len(occupants) == 0 {
		return "", nil
	}

	// 与原系统保持一致：只迁出第一个占用者
	previous := occupants[0]
	if err := db.Model(&previous).Update("room_id", nil).Error; err != nil {
		return "", err
	}
	return previous.Username, nil
}

// ListMembers 获取成员列表，按创建时间降序
func ListMembers(db *gorm.DB) ([]Member, error) {
	var members []Member
	result := db.Preload("School").Preload("Room").Preload("Room.Building").
		Order("create_time DESC").Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}
	return members, nil
}
