package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petrepopa00/gurmaio/config"
	"github.com/petrepopa00/gurmaio/models"
)

// openTestDB swaps config.DB for an in-memory database for the duration of
// the test and migrates the full schema, unique indexes included.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a second connection would see a different empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.MealPlan{},
		&models.ShoppingList{},
		&models.ScheduledDay{},
		&models.DayProgress{},
		&models.MealPreference{},
		&models.MealPortionAdjustment{},
		&models.Badge{},
		&models.UserDevice{},
		&models.ReminderSetting{},
	))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		_ = sqlDB.Close()
	})
	return db
}
