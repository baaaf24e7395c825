// model/user.go
package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 后台操作员模型
type User struct {
	ID       string `gorm:"primarykey;type:varchar(255)" json:"id"`             // 自增ID
	Email    string `gorm:"type:varchar(255);unique;not null" json:"email"`     // 邮箱
	Password string `gorm:"type:varchar(255);not null" json:"-"`                // 密码（加密存储）
	IsAdmin  uint8  `gorm:"type:tinyint(1);default:0;not null" json:"is_admin"` // 是否是管理员（1是，0不是）
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// BeforeCreate GORM hook，在创建记录前处理ID、密码和邮箱
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// 查询当前最大 ID
	var maxID int
	if err := tx.Model(&User{}).Select("COALESCE(MAX(CAST(id AS SIGNED)), 0)").Scan(&maxID).Error; err != nil {
		return err
	}

	// 设置新的 ID (最大ID + 1)
	u.ID = strconv.Itoa(maxID + 1)

	// 验证邮箱格式
	if err := u.ValidateEmail(); err != nil {
		return err
	}
	// 验证密码强度
	if err := u.ValidatePassword(); err != nil {
		return err
	}
	// 对密码进行哈希处理
	return u.HashPassword()
}

// BeforeUpdate GORM hook，在更新记录前处理密码和邮箱
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Email") {
		if err := u.ValidateEmail(); err != nil {
			return err
		}
	}
	if tx.Statement.Changed("Password") {
		if err := u.ValidatePassword(); err != nil {
			return err
		}
		return u.HashPassword()
	}
	return nil
}

// ValidateEmail 验证邮箱格式
func (u *User) ValidateEmail() error {
	if len(u.Email) == 0 {
		return errors.New("邮箱不能为空")
	}

	// 统一转换为小写
	u.Email = strings.ToLower(u.Email)

	emailRegex := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	if !emailRegex.MatchString(u.Email) {
		return errors.New("邮箱格式不正确")
	}

	return nil
}

// HashPassword 对密码进行哈希处理
func (u *User) HashPassword() error {
	if len(u.Password) == 0 {
		return errors.New("密码不能为空")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码是否正确
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// ValidatePassword 验证密码强度
func (u *User) ValidatePassword() error {
	if len(u.Password) < 6 {
		return fmt.Errorf("密码长度必须至少为%d个字符", 6)
	}

	// 必须包含至少一个数字和一个字母
	if !regexp.MustCompile(`[0-9]`).MatchString(u.Password) {
		return errors.New("密码必须包含至少一个数字")
	}
	if !regexp.MustCompile(`[A-Za-z]`).MatchString(u.Password) {
		return errors.New("密码必须包含至少一个字母")
	}

	return nil
}
