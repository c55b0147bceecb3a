package achievement

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	achievements := rg.Group("/user/:udid/achievements")
	{
		achievements.GET("", handler.GetAchievements)
		achievements.POST("", handler.UnlockAchievement)
	}
}
