package model

import (
	"testing"
)

func TestNormalizeRoomString(t *testing.T) {
	tests := []struct {
		raw          string
		wantBuilding string
		wantRoom     string
	}{
		{"A101-2", "A", "A101-2"},
		{"A101.2", "A", "A101-2"},
		{"B204C", "B", "B204-3"},
		{"C305A", "C", "C305-1"},
		{"D402F", "D", "D402-6"},
		// G不在A-F范围内，保持原样
		{"E501G", "E", "E501G"},
		{" A101-2 ", "A", "A101-2"},
	}

	for _, tt := range tests {
		building, room, err := NormalizeRoomString(tt.raw)
		if err != nil {
			t.Errorf("NormalizeRoomString(%q): %v", tt.raw, err)
			continue
		}
		if building != tt.wantBuilding {
			t.Errorf("NormalizeRoomString(%q) building = %q, want %q", tt.raw, building, tt.wantBuilding)
		}
		if room != tt.wantRoom {
			t.Errorf("NormalizeRoomString(%q) room = %q, want %q", tt.raw, room, tt.wantRoom)
		}
	}
}

func TestNormalizeRoomStringEmpty(t *testing.T) {
	if _, _, err := NormalizeRoomString(""); err == nil {
		t.Error("空房间字符串应当返回错误")
	}
	if _, _, err := NormalizeRoomString("   "); err == nil {
		t.Error("纯空白房间字符串应当返回错误")
	}
}
