package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func limitedRouter(limit, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/x", NewRateLimitPerIP(limit, burst, 100, time.Hour), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func hit(router *gin.Engine, addr string) int {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitPerIP_BurstExhaustion(t *testing.T) {
	router := limitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, hit(router, "10.0.0.1:1000"), "request %d within burst", i)
	}
	require.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.1:1000"))
}

func TestRateLimitPerIP_IsolatesClients(t *testing.T) {
	router := limitedRouter(1, 1)

	require.Equal(t, http.StatusOK, hit(router, "10.0.0.1:1000"))
	require.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.1:1000"))

	// a different address has its own bucket
	require.Equal(t, http.StatusOK, hit(router, "10.0.0.2:1000"))
}

func TestRateLimitPerIP_ConcurrentRequests(t *testing.T) {
	router := limitedRouter(1000, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				hit(router, "10.0.0.1:1000")
			}
		}()
	}
	wg.Wait()
}
