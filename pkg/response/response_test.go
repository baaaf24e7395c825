package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuccessAndError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"value": 1})
	})
	r.GET("/fail", func(c *gin.Context) {
		Error(c, http.StatusBadRequest, "参数错误")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusOK {
		t.Errorf("成功响应码 = %d, want 200", w.Code)
	}
	var body Body
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应体不是合法JSON: %v", err)
	}
	if body.Code != http.StatusOK || body.Data == nil {
		t.Errorf("成功响应体错误: %+v", body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("错误响应码 = %d, want 400", w.Code)
	}
	body = Body{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应体不是合法JSON: %v", err)
	}
	if body.Msg != "参数错误" {
		t.Errorf("错误消息 = %q, want 参数错误", body.Msg)
	}
}
