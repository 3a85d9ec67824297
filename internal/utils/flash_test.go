package utils

import (
	"encoding/gob"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	gob.Register([]Flash{})
	os.Exit(m.Run())
}

func newFlashRouter() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("session-test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	r.GET("/set", func(c *gin.Context) {
		SetFlash(c, "info", "hello")
		c.Status(http.StatusOK)
	})
	r.GET("/pop", func(c *gin.Context) {
		c.JSON(http.StatusOK, PopFlashes(c))
	})
	return r
}

func TestFlashRoundTrip(t *testing.T) {
	r := newFlashRouter()

	// 写入 Flash，拿到会话 Cookie
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/set", nil))
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("写入 Flash 后应设置会话 Cookie")
	}

	// 带 Cookie 读取，应取到一条消息
	req := httptest.NewRequest("GET", "/pop", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	var flashes []Flash
	if err := json.Unmarshal(w2.Body.Bytes(), &flashes); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(flashes) != 1 || flashes[0].Type != "info" || flashes[0].Message != "hello" {
		t.Fatalf("flashes = %+v, want 一条 info/hello", flashes)
	}

	// 再次读取应为空（一次性消息）
	req2 := httptest.NewRequest("GET", "/pop", nil)
	for _, ck := range w2.Result().Cookies() {
		req2.AddCookie(ck)
	}
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req2)

	var again []Flash
	if err := json.Unmarshal(w3.Body.Bytes(), &again); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("二次读取 flashes = %+v, want 空", again)
	}
}
