package middleware

import (
	"encoding/gob"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/user/bookslum/internal/utils"
)

const testJWTSecret = "jwt-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	gob.Register([]utils.Flash{})
	os.Exit(m.Run())
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("session-test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	r.Use(RequireAuth(testJWTSecret))
	r.GET("/private", func(c *gin.Context) {
		c.String(http.StatusOK, "uid=%d name=%s", GetUserID(c), GetUsername(c))
	})
	return r
}

func TestRequireAuthRedirectsPages(t *testing.T) {
	r := newAuthRouter()

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Errorf("Location = %q, want /login 前缀", loc)
	}
}

func TestRequireAuthRejectsAPI(t *testing.T) {
	r := newAuthRouter()

	req := httptest.NewRequest("GET", "/private", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	r := newAuthRouter()

	token, err := GenerateToken(42, "reader", testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "uid=42 name=reader" {
		t.Errorf("body = %q", got)
	}
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	r := newAuthRouter()

	token, err := GenerateToken(42, "reader", testJWTSecret, -time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthAcceptsBearerHeader(t *testing.T) {
	r := newAuthRouter()

	token, err := GenerateToken(7, "writer", testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
