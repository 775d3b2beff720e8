package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/adapters/notify"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamRecorder adds the CloseNotifier that gin's Stream expects.
type streamRecorder struct {
	*httptest.ResponseRecorder
	gone chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.gone }

func TestStreamNotifications_EndsWhenHubCloses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := notify.NewHub(4)
	router := gin.New()
	registerNotificationRoutes(router.Group("/api/v1"), hub)

	w := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), gone: make(chan bool, 1)}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/stream", nil)
	done := make(chan struct{})
	go func() {
		router.ServeHTTP(w, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	hub.Notify(context.Background(), domain.EventStockUpdated, "product-a", 7)
	hub.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream still open after the hub closed")
	}
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "event:"+domain.EventStockUpdated)
	assert.Equal(t, 0, hub.Subscribers())
}
