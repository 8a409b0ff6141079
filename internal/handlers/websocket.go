package handlers

import (
	"github.com/brianmwangi/estatelink-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler upgrades the connection and hands it to the hub. Auth
// middleware has already resolved the user from the token query parameter.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		services.HandleWebSocket(hub, c.Writer, c.Request, userId, userType)
	}
}
