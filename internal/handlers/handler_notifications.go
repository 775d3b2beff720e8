package handlers

import (
	"io"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/adapters/notify"
	"github.com/SscSPs/b2b_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const sseKeepAlive = 25 * time.Second

// EventSubscriber hands out event streams.
type EventSubscriber interface {
	Subscribe() (<-chan notify.Event, func())
}

func registerNotificationRoutes(rg *gin.RouterGroup, hub EventSubscriber) {
	rg.GET("/notifications/stream", streamNotifications(hub))
}

// streamNotifications godoc
// @Summary Stream real-time events
// @Description Server-sent events for stock and order changes. Pass the token as access_token when headers cannot be set.
// @Tags notifications
// @Produce text/event-stream
// @Success 200 {object} notify.Event
// @Security BearerAuth
// @Router /notifications/stream [get]
func streamNotifications(hub EventSubscriber) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		events, unsubscribe := hub.Subscribe()
		defer unsubscribe()

		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")

		keepAlive := time.NewTicker(sseKeepAlive)
		defer keepAlive.Stop()

		logger.Info("Notification stream opened")
		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case e, ok := <-events:
				if !ok {
					return false
				}
				c.SSEvent(e.Name, e)
				return true
			case <-keepAlive.C:
				c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
				return true
			}
		})
		logger.Info("Notification stream closed")
	}
}
