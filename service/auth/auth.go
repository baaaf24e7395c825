// service/auth/auth.go
package auth

import (
	"campus/middleware"
	"campus/repository/auth"

	"gorm.io/gorm"
)

type AuthService struct {
	authRepo *auth.AuthRepository
}

type LoginResult struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	IsAdmin uint8  `json:"is_admin"`
	Email   string `json:"email"`
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		authRepo: auth.NewAuthRepository(db),
	}
}

// Login 处理操作员登录认证
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.authRepo.ValidateCredentials(email, password)
	if err != nil {
		return nil, err
	}

	token, err := middleware.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   token,
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		Email:   user.Email,
	}, nil
}

// Register 处理操作员注册
func (s *AuthService) Register(email, password string) (*LoginResult, error) {
	user, err := s.authRepo.CreateUser(email, password)
	if err != nil {
		return nil, err
	}

	token, err := middleware.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   token,
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		Email:   user.Email,
	}, nil
}
