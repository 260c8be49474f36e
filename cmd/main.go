package main

import (
	"log"
	"os"

	"github.com/petrepopa00/gurmaio/config"
	"github.com/petrepopa00/gurmaio/controllers"
	"github.com/petrepopa00/gurmaio/routes"
	"github.com/petrepopa00/gurmaio/services"
	"github.com/petrepopa00/gurmaio/utils"
)

func main() {
	config.InitDB()
	utils.InitMailer()

	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		// Push is optional; the app runs fine without SNS credentials.
		log.Printf("push disabled: %v", err)
		push = nil
	}

	plans := services.NewPlanService()
	lists := services.NewShoppingListService(plans)
	schedule := services.NewScheduleService(plans, hub, push)
	translator := services.NewTranslationService(services.NewTranslationCache())

	r := routes.SetupRouter(routes.Controllers{
		Plans:        controllers.NewPlanController(plans, translator),
		ShoppingList: controllers.NewShoppingListController(lists),
		Schedule:     controllers.NewScheduleController(schedule),
		Preferences:  controllers.NewPreferenceController(plans),
		Devices:      controllers.NewDeviceController(push),
		Realtime:     controllers.NewRealtimeController(hub),
	})

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
