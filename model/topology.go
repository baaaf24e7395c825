// model/topology.go
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Building 楼栋模型
type Building struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);unique;not null" json:"name"` // 楼栋名（单个字母）
}

// TableName 指定表名
func (Building) TableName() string {
	return "buildings"
}

// Room 房间模型
type Room struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	BuildingID uint     `gorm:"not null;uniqueIndex:idx_building_room" json:"building_id"` // 所属楼栋ID
	Building   Building `json:"building"`
	Name       string   `gorm:"type:varchar(255);not null;uniqueIndex:idx_building_room" json:"name"` // 房间名（归一化后）
}

// TableName 指定表名
func (Room) TableName() string {
	return "rooms"
}

// NormalizeRoomString 归一化CSV中的房间字符串并拆出楼栋字母
// 规则：点替换为横线；结尾的字母A-F替换为-1到-6；首字符即楼栋
// 例如 "A101.2" -> A / "A101-2"，"B204C" -> B / "B204-3"
func NormalizeRoomString(raw string) (building string, room string, err error) {
	room = strings.TrimSpace(raw)
	if room == "" {
		return "", "", errors.New("房间字符串为空")
	}

	room = strings.ReplaceAll(room, ".", "-")

	// 结尾字母A-F表示分间编号
	last := room[len(room)-1]
	if last >= 'A' && last <= 'F' {
		room = room[:len(room)-1] + "-" + strconv.Itoa(int(last-'A')+1)
	}

	building = string(room[0])
	return building, room, nil
}

// ResolveRoom 根据房间字符串解析出房间记录
func ResolveRoom(db *gorm.DB, raw string) (*Room, error) {
	buildingName, roomName, err := NormalizeRoomString(raw)
	if err != nil {
		return nil, err
	}

	var building Building
	if err := db.Where("name = ?", buildingName).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("楼栋不存在: %s", buildingName)
		}
		return nil, err
	}

	var room Room
	if err := db.Where("building_id = ? AND name = ?", building.ID, roomName).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("房间不存在: %s", roomName)
		}
		return nil, err
	}

	room.Building = building
	return &room, nil
}
