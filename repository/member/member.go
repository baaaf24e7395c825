// repository/member/member.go
package member

import (
	"campus/model"

	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{
		db: db,
	}
}

// List 获取成员列表
func (r *MemberRepository) List() ([]model.Member, error) {
	return model.ListMembers(r.db)
}

// GetByUsername 根据用户名获取成员
func (r *MemberRepository) GetByUsername(username string) (*model.Member, error) {
	return model.GetMemberByUsername(r.db, username)
}

// VacateRoom 强制迁出指定房间的占用者
func (r *MemberRepository) VacateRoom(roomID uint) (string, error) {
	return model.VacateRoom(r.db, roomID)
}
