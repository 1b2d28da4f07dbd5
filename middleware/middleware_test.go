package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded list", map[string]string{"X-Forwarded-For": " 203.0.113.9 , 10.0.0.1"}, "10.0.0.2:5555", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.2:5555", "198.51.100.4"},
		{"remote addr", nil, "192.0.2.1:4321", "192.0.2.1"},
		{"remote without port", nil, "192.0.2.1", "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	// 20/min gives a burst of 5.
	r.Use(RateLimitMiddleware(20, zap.NewNop()))
	r.GET("/bookings", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit("203.0.113.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, hit("203.0.113.1"))
	assert.Equal(t, http.StatusOK, hit("203.0.113.2"), "other visitors have their own budget")
}

func TestRateLimiterStoreEvictsIdle(t *testing.T) {
	s := newRateLimiterStore(60)
	now := time.Now()
	s.getLimiter("a", now)
	s.getLimiter("b", now.Add(idleLimiterTTL+time.Second))
	assert.Len(t, s.visitors, 1)
	assert.Contains(t, s.visitors, "b")
}

type stubValidator struct{ valid string }

func (v stubValidator) Validate(token string) error {
	if token != v.valid {
		return errors.New("bad token")
	}
	return nil
}

func TestAdminTokenMiddleware(t *testing.T) {
	build := func(enabled bool) *gin.Engine {
		r := gin.New()
		r.POST("/bookings", AdminTokenMiddleware(stubValidator{valid: "good"}, enabled), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}
	call := func(r *gin.Engine, auth string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	open := build(false)
	assert.Equal(t, http.StatusOK, call(open, ""))

	gated := build(true)
	assert.Equal(t, http.StatusUnauthorized, call(gated, ""))
	assert.Equal(t, http.StatusUnauthorized, call(gated, "Basic good"))
	assert.Equal(t, http.StatusUnauthorized, call(gated, "Bearer bad"))
	assert.Equal(t, http.StatusOK, call(gated, "Bearer good"))
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/contact", func(c *gin.Context) {
		var v map[string]any
		if err := c.ShouldBindJSON(&v); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"a long body"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}
