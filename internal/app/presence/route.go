package presence

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	active := rg.Group("/users/active")
	{
		active.GET("", handler.GetActiveUsers)
		active.POST("", handler.Heartbeat)
	}
}
