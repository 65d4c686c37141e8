package websocket

import (
	"log"
	"net/http"
	"strings"

	"github.com/business-nexus/backend/database"
	"github.com/business-nexus/backend/models"
	"github.com/business-nexus/backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// ServeWS authenticates and upgrades a websocket connection for the hub.
// The token comes from the Authorization header or a token query parameter;
// a failed resolution rejects the connection before any registry mutation.
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if tokenString == "" {
			utils.Error(c, http.StatusUnauthorized, "Authorization token required")
			return
		}

		userID, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil || !user.IsActive {
			utils.Error(c, http.StatusUnauthorized, "Account not found or deactivated")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("error upgrading connection for user %s: %v", user.ID, err)
			return
		}

		client := &Client{
			hub:    hub,
			conn:   conn,
			send:   make(chan []byte, 256),
			userID: user.ID,
			name:   user.Name,
			avatar: user.Avatar,
			rooms:  make(map[string]bool),
		}

		hub.register <- client

		go client.readPump()
		go client.writePump()
	}
}
