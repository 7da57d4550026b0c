package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaWS "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/opencampus/doctrack/internal/auth"
)

var upgrader = gorillaWS.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// origin is enforced by the CORS layer in front of this handler
		return true
	},
}

// Handler upgrades an authenticated request to a websocket connection.
// Browsers cannot set headers on websocket upgrades, so the token is
// taken from the token query parameter.
func Handler(hub *Hub, manager *auth.TokenManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := manager.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
			return
		}

		client := NewClient(uuid.New().String(), claims.UserID, hub, conn, logger)

		hub.Register <- client

		go client.ReadPump()
		go client.WritePump()
	}
}
