// repository/auth/auth.go
package auth

import (
	"errors"

	"campus/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{
		db: db,
	}
}

// ValidateCredentials 验证操作员凭证
func (r *AuthRepository) ValidateCredentials(email, password string) (*model.User, error) {
	var user model.User

	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("用户不存在")
		}
		return nil, result.Error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("密码错误")
	}

	return &user, nil
}

// CreateUser 创建新操作员
func (r *AuthRepository) CreateUser(email, password string) (*model.User, error) {
	// 检查邮箱是否已存在
	var existing model.User
	if result := r.db.Where("email = ?", email).First(&existing); result.Error == nil {
		return nil, errors.New("该邮箱已被注册")
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	user := &model.User{
		Email:    email,
		Password: password,
		IsAdmin:  0, // 默认非管理员
	}

	if err := user.ValidateEmail(); err != nil {
		return nil, err
	}

	// 密码验证和加密在 BeforeCreate 钩子中处理
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}
