package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"mockera_backend/internal/config"
	"mockera_backend/internal/model"
	"mockera_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func authTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.String(http.StatusOK, claims.UserID)
	})
	return router
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	user := &model.User{UUIDBase: model.UUIDBase{ID: "user-1"}, Role: model.Student}
	token, err := util.GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token
}

func serveWithToken(router *gin.Engine, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestAuthMiddlewareSecretRotation(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "old-secret"}}
	router := authTestRouter(cfg)

	oldToken := signToken(t, "old-secret")
	if code := serveWithToken(router, oldToken); code != http.StatusOK {
		t.Fatalf("old token before rotation: status %d, want 200", code)
	}

	cfg.ReplaceJWT(config.JWTConfig{Secret: "new-secret"})

	if code := serveWithToken(router, oldToken); code != http.StatusUnauthorized {
		t.Errorf("old token after rotation: status %d, want 401", code)
	}
	if code := serveWithToken(router, signToken(t, "new-secret")); code != http.StatusOK {
		t.Errorf("new token after rotation: status %d, want 200", code)
	}
}

// 热更新 goroutine 替换 JWT 段的同时请求持续进来，
// 两侧都必须经过 Config 的读写锁（-race 下验证）。
func TestAuthMiddlewareConcurrentReload(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "shared-secret"}}
	router := authTestRouter(cfg)
	token := signToken(t, "shared-secret")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			cfg.ReplaceJWT(config.JWTConfig{Secret: "shared-secret"})
		}
		close(done)
	}()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if code := serveWithToken(router, token); code != http.StatusOK {
					t.Errorf("status %d, want 200", code)
					return
				}
			}
		}()
	}
	wg.Wait()
	<-done
}
