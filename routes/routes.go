package routes

import (
	"net/http"

	"nutrakids/controllers"
	"nutrakids/middlewares"

	"github.com/gin-gonic/gin"
)

// Controllers is everything the router dispatches to.
type Controllers struct {
	Auth     *controllers.AuthController
	Food     *controllers.FoodController
	Child    *controllers.ChildController
	Realtime *controllers.RealtimeController
	Verifier middlewares.TokenVerifier
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", ctl.Auth.Signup)
		auth.POST("/login", ctl.Auth.Login)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware(ctl.Verifier))

	protected.GET("/auth/me", ctl.Auth.Me)
	protected.PUT("/auth/me", ctl.Auth.UpdateMe)

	foods := protected.Group("/foods")
	{
		foods.POST("/suggest", ctl.Food.Suggest)
		foods.POST("/recognize", ctl.Food.Recognize)
		foods.GET("/categories", ctl.Food.Categories)
		foods.GET("/dictionary", ctl.Food.Dictionary)
		foods.POST("/dictionary", ctl.Food.AddDictionary)
		foods.GET("", ctl.Food.ListHousehold)
		foods.POST("", ctl.Food.AddHousehold)
		foods.DELETE("/:id", ctl.Food.DeleteHousehold)
	}

	children := protected.Group("/children")
	{
		children.POST("", ctl.Child.Create)
		children.GET("", ctl.Child.List)
		children.PUT("/:id/preferences", ctl.Child.SavePreferences)
		children.GET("/:id/preferences", ctl.Child.GetPreferences)
		children.POST("/:id/meals", ctl.Child.LogFood)
		children.GET("/:id/meals", ctl.Child.Meals)
		children.POST("/:id/water", ctl.Child.LogWater)
		children.GET("/:id/points", ctl.Child.Points)
		children.GET("/:id/achievements", ctl.Child.GetAchievements)
		children.POST("/:id/meal-plan", ctl.Child.MealPlan)
	}

	protected.GET("/ws/events", ctl.Realtime.EventsWS)

	return r
}
