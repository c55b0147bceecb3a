package chat

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	messages := rg.Group("/chat/messages")
	{
		messages.GET("", handler.GetMessages)
		messages.POST("", handler.CreateMessage)
	}
}
