package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	users := rg.Group("/user")
	{
		users.POST("", handler.Register)
		users.GET("/:udid", handler.GetUser)
		users.DELETE("/:udid", handler.DeleteUser)
	}
}
