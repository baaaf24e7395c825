package model

import (
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"admin@campus.local", false},
		{"Admin@Campus.Local", false}, // 自动转小写
		{"a.b+c@example.com", false},
		{"", true},
		{"not-an-email", true},
		{"@example.com", true},
	}

	for _, tt := range tests {
		u := &User{Email: tt.email}
		err := u.ValidateEmail()
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEmail(%q) err = %v, wantErr = %v", tt.email, err, tt.wantErr)
		}
	}

	// 验证后邮箱应当是小写
	u := &User{Email: "Admin@Campus.Local"}
	if err := u.ValidateEmail(); err != nil {
		t.Fatalf("ValidateEmail: %v", err)
	}
	if u.Email != "admin@campus.local" {
		t.Errorf("邮箱未转换为小写: %q", u.Email)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"Aa112233", false},
		{"abc123", false},
		{"short", true},    // 太短
		{"abcdefgh", true}, // 没有数字
		{"12345678", true}, // 没有字母
	}

	for _, tt := range tests {
		u := &User{Password: tt.password}
		err := u.ValidatePassword()
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) err = %v, wantErr = %v", tt.password, err, tt.wantErr)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	u := &User{Password: "Aa112233"}
	if err := u.HashPassword(); err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if u.Password == "Aa112233" {
		t.Fatal("密码未被哈希")
	}

	if !u.CheckPassword("Aa112233") {
		t.Error("正确密码校验失败")
	}
	if u.CheckPassword("wrong") {
		t.Error("错误密码不应通过校验")
	}
}
