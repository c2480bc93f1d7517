package routes

import (
	"launchcontrol/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupEventRoutes configures the websocket event stream
func SetupEventRoutes(r *gin.Engine) {
	r.GET("/api/events/stream", handlers.StreamEvents)
}
