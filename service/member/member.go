// service/member/member.go
package member

import (
	"campus/model"
	"campus/repository/member"

	"gorm.io/gorm"
)

type MemberService struct {
	repo *member.MemberRepository
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{
		repo: member.NewMemberRepository(db),
	}
}

// List 获取成员列表
func (s *MemberService) List() ([]model.Member, error) {
	return s.repo.List()
}

// VacateRoom 强制迁出指定房间的占用者，返回被迁出成员的用户名
func (s *MemberService) VacateRoom(roomID uint) (string, error) {
	return s.repo.VacateRoom(roomID)
}
