package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func corsRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(origins))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORSAllowedOrigin(t *testing.T) {
	r := corsRouter([]string{"https://app.mockera.in"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.mockera.in")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.mockera.in" {
		t.Errorf("Allow-Origin = %q, want the requesting origin", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true", got)
	}
}

func TestCORSUnknownOrigin(t *testing.T) {
	r := corsRouter([]string{"https://app.mockera.in"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty for unlisted origin", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := corsRouter([]string{"https://app.mockera.in"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.mockera.in")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
}

func TestRateLimiterExhaustion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(3, time.Minute))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("over-limit status = %d, want 429", w.Code)
	}
}

func TestIPLimiterPrune(t *testing.T) {
	l := newIPLimiter(10, time.Minute)
	l.allow("1.2.3.4")
	l.allow("5.6.7.8")

	l.mu.Lock()
	l.buckets["1.2.3.4"].lastSeen = time.Now().Add(-time.Hour)
	l.mu.Unlock()

	l.prune(30 * time.Minute)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.buckets["1.2.3.4"]; ok {
		t.Error("idle bucket survived prune")
	}
	if _, ok := l.buckets["5.6.7.8"]; !ok {
		t.Error("active bucket was pruned")
	}
}
