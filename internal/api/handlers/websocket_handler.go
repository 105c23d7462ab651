package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/siriassis-creator/Sit-logistics-app/internal/auth"
	"github.com/siriassis-creator/Sit-logistics-app/internal/socket"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub    *socket.Hub
	Store  store.Store
	Issuer *auth.TokenIssuer
	Log    *zap.Logger
}

// ServeWs upgrades the connection and hands it to a session. Browsers
// cannot set headers on a websocket handshake, so the token rides in
// the query string.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims, err := h.Issuer.Parse(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	session := socket.NewSession(claims.UserID, conn, h.Store, h.Hub, h.Log)
	session.Run()
}
