package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"shop-service/middleware"
	"shop-service/notifications"
	"shop-service/repository"
)

const writeWait = 10 * time.Second

// NotificationController serves the live notification WebSocket. Each
// accepted connection is subscribed to the caller's private channel and
// receives published events as JSON text frames. The channel is
// receive-only: inbound frames are read solely to detect disconnects.
type NotificationController struct {
	hub      *notifications.Hub
	tokens   middleware.ITokenValidator
	users    repository.UserRepository
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(
	hub *notifications.Hub,
	tokens middleware.ITokenValidator,
	users repository.UserRepository,
	logger *zap.Logger,
) *NotificationController {
	return &NotificationController{
		hub:    hub,
		tokens: tokens,
		users:  users,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Demo service; the browser client is served from another origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream upgrades the request and pumps notification events to the client.
// Anonymous connections are accepted at the protocol level and closed
// immediately, before any subscription is registered.
func (nc *NotificationController) Stream(c *gin.Context) {
	user, authErr := middleware.ResolveUser(c, nc.tokens, nc.users)

	conn, err := nc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		nc.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if authErr != nil {
		deadline := time.Now().Add(writeWait)
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication required")
		_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
		return
	}

	channel := notifications.ChannelForUser(user.Username)
	sub := nc.hub.Subscribe(channel)
	defer nc.hub.Unsubscribe(sub)

	nc.logger.Info("Notification subscriber connected", zap.String("channel", channel))

	// Reader: the client sends nothing meaningful, but the read loop is how
	// we learn about disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload, ok := <-sub.C:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-done:
			nc.logger.Info("Notification subscriber disconnected", zap.String("channel", channel))
			return
		}
	}
}
