package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrepopa00/gurmaio/config"
	"github.com/petrepopa00/gurmaio/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestScheduleDates(t *testing.T) {
	start := day(t, "2024-03-30")
	dates := ScheduleDates(start, []int{1, 2, 3, 4})

	assert.Equal(t, "2024-03-30", dates[1])
	assert.Equal(t, "2024-03-31", dates[2])
	// crosses the month boundary by date arithmetic
	assert.Equal(t, "2024-04-01", dates[3])
	assert.Equal(t, "2024-04-02", dates[4])
}

func TestScheduleDatesYearBoundary(t *testing.T) {
	dates := ScheduleDates(day(t, "2023-12-31"), []int{1, 2})
	assert.Equal(t, "2023-12-31", dates[1])
	assert.Equal(t, "2024-01-01", dates[2])
}

func TestCopyWeekDates(t *testing.T) {
	t.Run("shifts onto consecutive target days", func(t *testing.T) {
		got := CopyWeekDates([]string{"2024-01-01", "2024-01-02", "2024-01-03"}, day(t, "2024-01-08"))
		assert.Equal(t, []string{"2024-01-08", "2024-01-09", "2024-01-10"}, got)
	})

	t.Run("gaps in source collapse", func(t *testing.T) {
		got := CopyWeekDates([]string{"2024-01-01", "2024-01-04"}, day(t, "2024-02-01"))
		assert.Equal(t, []string{"2024-02-01", "2024-02-02"}, got)
	})

	t.Run("empty source", func(t *testing.T) {
		assert.Empty(t, CopyWeekDates(nil, day(t, "2024-02-01")))
	})
}

// scheduleFixturePlan stores a minimal plan with one lunch per day.
func scheduleFixturePlan(t *testing.T, userID uint, days int) *models.MealPlan {
	t.Helper()
	plan := &models.MealPlan{
		UserID:      userID,
		PlanID:      uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
	for d := 1; d <= days; d++ {
		meal := models.Meal{
			MealID:   uuid.NewString(),
			MealType: "lunch",
			Name:     "Lentil Soup",
			Ingredients: []models.Ingredient{{
				IngredientID: uuid.NewString(),
				Name:         "Lentils",
				QuantityG:    80,
				CostEur:      0.40,
				Nutrition:    models.Nutrition{Calories: 280, ProteinG: 20, CarbohydratesG: 40, FatsG: 2},
			}},
		}
		meal.Nutrition, meal.MealCostEur = MealTotalsFromIngredients(&meal)
		plan.Days = append(plan.Days, models.PlanDay{DayNumber: d, Meals: []models.Meal{meal}})
	}
	RecalculatePlanTotals(plan)
	require.NoError(t, config.DB.Create(plan).Error)
	return plan
}

func TestAssignStartDateConflicts(t *testing.T) {
	openTestDB(t)
	svc := NewScheduleService(NewPlanService(), nil, nil)

	planA := scheduleFixturePlan(t, 1, 3)
	planB := scheduleFixturePlan(t, 1, 3)

	_, err := svc.AssignStartDate(1, planA.PlanID, day(t, "2024-05-01"))
	require.NoError(t, err)

	// planB would land on 2024-05-03..05, overlapping planA's last day
	_, err = svc.AssignStartDate(1, planB.PlanID, day(t, "2024-05-03"))
	assert.ErrorIs(t, err, ErrDateConflict)

	// nothing of the rejected assignment sticks
	var n int64
	require.NoError(t, config.DB.Model(&models.ScheduledDay{}).
		Where("plan_id = ?", planB.PlanID).Count(&n).Error)
	assert.Zero(t, n)

	_, err = svc.AssignStartDate(1, planB.PlanID, day(t, "2024-05-04"))
	require.NoError(t, err)

	// a plan's own rows don't block its rescheduling
	rows, err := svc.AssignStartDate(1, planA.PlanID, day(t, "2024-04-29"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-04-29", rows[0].Date)
	assert.Equal(t, "2024-05-01", rows[2].Date)
}

func TestAssignStartDateConflictsWithCompletedDay(t *testing.T) {
	openTestDB(t)
	svc := NewScheduleService(NewPlanService(), nil, nil)

	plan := scheduleFixturePlan(t, 2, 2)
	require.NoError(t, config.DB.Create(&models.DayProgress{
		UserID: 2, Date: "2024-07-02", MealsCount: 1,
	}).Error)

	_, err := svc.AssignStartDate(2, plan.PlanID, day(t, "2024-07-01"))
	assert.ErrorIs(t, err, ErrDateConflict)
}

func TestCompleteDayIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewScheduleService(NewPlanService(), nil, nil)
	plan := scheduleFixturePlan(t, 1, 1)

	first, err := svc.CompleteDay(1, plan.PlanID, 1, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 1, first.MealsCount)
	assert.InDelta(t, plan.Days[0].Totals.CostEur, first.TotalCost, 0.001)
	require.Len(t, first.CompletedMeals, 1)
	assert.Equal(t, "Lentil Soup", first.CompletedMeals[0].Name)

	again, err := svc.CompleteDay(1, plan.PlanID, 1, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	var n int64
	require.NoError(t, db.Model(&models.DayProgress{}).Where("user_id = ?", 1).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUncompleteDay(t *testing.T) {
	db := openTestDB(t)
	svc := NewScheduleService(NewPlanService(), nil, nil)
	plan := scheduleFixturePlan(t, 1, 1)

	_, err := svc.CompleteDay(1, plan.PlanID, 1, "2024-05-01")
	require.NoError(t, err)

	require.NoError(t, svc.UncompleteDay(1, "2024-05-01"))
	var n int64
	require.NoError(t, db.Model(&models.DayProgress{}).Where("user_id = ?", 1).Count(&n).Error)
	assert.Zero(t, n)

	// removing an absent record stays a no-op
	require.NoError(t, svc.UncompleteDay(1, "2024-05-01"))
}

func TestCopyWeekRejectsTakenTarget(t *testing.T) {
	db := openTestDB(t)
	svc := NewScheduleService(NewPlanService(), nil, nil)

	source := []models.DayProgress{
		{UserID: 1, Date: "2024-05-01", MealsCount: 2, TotalCost: 3.5,
			CompletedMeals: []models.CompletedMeal{{Name: "Lentil Soup"}, {Name: "Avocado Toast"}}},
		{UserID: 1, Date: "2024-05-02", MealsCount: 1, TotalCost: 1.2,
			CompletedMeals: []models.CompletedMeal{{Name: "Greek Salad"}}},
	}
	require.NoError(t, db.Create(&source).Error)

	// target window collides with an already completed day
	require.NoError(t, db.Create(&models.DayProgress{UserID: 1, Date: "2024-05-09", MealsCount: 1}).Error)
	_, err := svc.CopyWeek(1, []string{"2024-05-01", "2024-05-02"}, day(t, "2024-05-08"))
	assert.ErrorIs(t, err, ErrDateConflict)

	var n int64
	require.NoError(t, db.Model(&models.DayProgress{}).Where("user_id = ?", 1).Count(&n).Error)
	assert.EqualValues(t, 3, n, "rejected copy writes nothing")

	copies, err := svc.CopyWeek(1, []string{"2024-05-01", "2024-05-02"}, day(t, "2024-06-01"))
	require.NoError(t, err)
	require.Len(t, copies, 2)
	assert.Equal(t, "2024-06-01", copies[0].Date)
	assert.Equal(t, "2024-06-02", copies[1].Date)
	assert.Equal(t, 2, copies[0].MealsCount)
	assert.InDelta(t, 3.5, copies[0].TotalCost, 0.001)
	assert.Equal(t, "Greek Salad", copies[1].CompletedMeals[0].Name)
}

func TestBadgeThresholds(t *testing.T) {
	for streak, badgeID := range streakBadges {
		assert.NotEmpty(t, badgeNames[badgeID], "streak %d has no badge name", streak)
	}
	assert.Equal(t, "streak_3", streakBadges[3])
	assert.Equal(t, "streak_45", streakBadges[45])
	_, ok := streakBadges[4]
	assert.False(t, ok, "non-milestone streaks mint nothing")
}
