package resetclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostReset(t *testing.T) {
	var gotUsername, gotEmail string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		gotUsername = r.FormValue("username")
		gotEmail = r.FormValue("email")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := PostReset(server.URL, "jean-dupont", "jean.dupont@example.com"); err != nil {
		t.Fatalf("PostReset: %v", err)
	}
	if gotUsername != "jean-dupont" {
		t.Errorf("username = %q, want jean-dupont", gotUsername)
	}
	if gotEmail != "jean.dupont@example.com" {
		t.Errorf("email = %q, want jean.dupont@example.com", gotEmail)
	}
}

func TestPostResetRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if err := PostReset(server.URL, "nobody", "nobody@example.com"); err == nil {
		t.Error("非2xx响应应当返回错误")
	}
}

func TestPostResetUnreachable(t *testing.T) {
	// 不可达地址
	if err := PostReset("http://127.0.0.1:1/reset", "a", "a@b.c"); err == nil {
		t.Error("连接失败应当返回错误")
	}
}
