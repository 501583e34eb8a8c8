package routes

import (
	"kumbhsetu/pkg/websocket"

	"github.com/gin-gonic/gin"
)

func SetupWebSocketRoutes(r *gin.RouterGroup, wsHandler *websocket.Handler, auth gin.HandlerFunc) {
	r.GET("/ws", auth, wsHandler.HandleWebSocket)
}
