package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTokenRoundtrip(t *testing.T) {
	token, err := GenerateToken("42", 1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "42" {
		t.Errorf("UserID = %q, want 42", claims.UserID)
	}
	if claims.IsAdmin != 1 {
		t.Errorf("IsAdmin = %d, want 1", claims.IsAdmin)
	}
}

func TestParseTokenInvalid(t *testing.T) {
	if _, err := ParseToken("not-a-token"); err == nil {
		t.Error("非法token应当返回错误")
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newTestRouter()

	// 没有Authorization头
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Errorf("无认证头返回码 = %d, want 401", w.Code)
	}

	// 格式错误的认证头
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Errorf("错误格式认证头返回码 = %d, want 401", w.Code)
	}

	// 有效token
	token, err := GenerateToken("7", 0)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Errorf("有效token返回码 = %d, want 200", w.Code)
	}
}
