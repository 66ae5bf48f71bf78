package webserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitMiddleware(t *testing.T) {
	sessions := newMemSessions()
	token := login(t, sessions, 1)
	otherToken := login(t, sessions, 2)

	r := gin.New()
	limiter := NewRateLimiter(3, time.Minute)
	r.POST("/limited", SessionMiddleware(testSecret, sessions), RateLimitMiddleware(limiter), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		if w := doJSON(t, r, http.MethodPost, "/limited", token, nil); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i+1, w.Code)
		}
	}
	if w := doJSON(t, r, http.MethodPost, "/limited", token, nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("over-limit status = %d, want 429", w.Code)
	}

	// The window is per principal, not global.
	if w := doJSON(t, r, http.MethodPost, "/limited", otherToken, nil); w.Code != http.StatusOK {
		t.Errorf("second user status = %d, want 200", w.Code)
	}
}
