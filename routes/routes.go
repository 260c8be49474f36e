package routes

import (
	"github.com/petrepopa00/gurmaio/controllers"
	"github.com/petrepopa00/gurmaio/middlewares"

	"github.com/gin-gonic/gin"
)

// Controllers bundles the stateful handlers main wires up at boot.
type Controllers struct {
	Plans        *controllers.PlanController
	ShoppingList *controllers.ShoppingListController
	Schedule     *controllers.ScheduleController
	Preferences  *controllers.PreferenceController
	Devices      *controllers.DeviceController
	Realtime     *controllers.RealtimeController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/verify", controllers.VerifyEmail)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Standalone calculator, usable during onboarding before signup
	r.POST("/calculator/calories", controllers.CalculateCalories)

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		user := api.Group("/user")
		{
			user.GET("/profile", controllers.GetProfile)
			user.PUT("/profile", controllers.UpdateProfile)
			user.PUT("/language", controllers.SetLanguage)
		}

		plans := api.Group("/meal-plans")
		{
			plans.POST("/generate", ctl.Plans.Generate)
			plans.GET("/current", ctl.Plans.Current)
			plans.GET("", ctl.Plans.List)
			plans.GET("/:planId", ctl.Plans.Get)
			plans.POST("/:planId/save", ctl.Plans.Save)
			plans.DELETE("/:planId", ctl.Plans.Delete)
			plans.GET("/:planId/translations", ctl.Plans.Translations)

			plans.GET("/:planId/shopping-list", ctl.ShoppingList.Get)
			plans.POST("/:planId/shopping-list/regenerate", ctl.ShoppingList.Regenerate)
			plans.PATCH("/:planId/shopping-list/items/:ingredientId", ctl.ShoppingList.UpdateItem)
			plans.GET("/:planId/shopping-list/share", ctl.ShoppingList.Share)
			plans.GET("/:planId/shopping-list/export", ctl.ShoppingList.Export)

			plans.POST("/:planId/schedule", ctl.Schedule.AssignStartDate)
			plans.PATCH("/:planId/schedule/day", ctl.Schedule.ChangeDayDate)
			plans.GET("/:planId/schedule", ctl.Schedule.ListScheduledDays)
		}

		progress := api.Group("/progress")
		{
			progress.POST("/complete", ctl.Schedule.CompleteDay)
			progress.DELETE("/complete/:date", ctl.Schedule.UncompleteDay)
			progress.GET("", ctl.Schedule.ListProgress)
			progress.GET("/streak", ctl.Schedule.Streak)
			progress.GET("/badges", ctl.Schedule.Badges)
			progress.POST("/copy-week", ctl.Schedule.CopyWeek)
		}

		prefs := api.Group("/preferences")
		{
			prefs.POST("/meals", ctl.Preferences.RateMeal)
			prefs.GET("/meals", ctl.Preferences.List)
			prefs.POST("/portions", ctl.Preferences.AdjustPortion)
		}

		devices := api.Group("/devices")
		{
			devices.POST("", ctl.Devices.Register)
			devices.DELETE("", ctl.Devices.Unregister)
			devices.GET("/reminder", ctl.Devices.GetReminder)
			devices.PUT("/reminder", ctl.Devices.UpdateReminder)
		}

		api.GET("/ws/events", ctl.Realtime.EventsWS)
	}

	return r
}
