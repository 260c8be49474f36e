package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/petrepopa00/gurmaio/config"
	"github.com/petrepopa00/gurmaio/models"
	"github.com/petrepopa00/gurmaio/utils"
)

const dateLayout = "2006-01-02"

// ScheduleDates maps every day number of a plan onto consecutive calendar
// dates starting at start: date(n) = start + (n-1).
func ScheduleDates(start time.Time, dayNumbers []int) map[int]string {
	out := make(map[int]string, len(dayNumbers))
	for _, n := range dayNumbers {
		out[n] = start.AddDate(0, 0, n-1).Format(dateLayout)
	}
	return out
}

// CopyWeekDates maps the Nth source date onto targetStart + (N-1),
// preserving source order. Gaps in the source collapse.
func CopyWeekDates(sourceDates []string, targetStart time.Time) []string {
	out := make([]string, len(sourceDates))
	for i := range sourceDates {
		out[i] = targetStart.AddDate(0, 0, i).Format(dateLayout)
	}
	return out
}

type ScheduleService struct {
	plans *PlanService
	hub   *RealtimeHub
	push  *PushService
}

// hub and push may be nil; completion then simply skips notifications.
func NewScheduleService(plans *PlanService, hub *RealtimeHub, push *PushService) *ScheduleService {
	return &ScheduleService{plans: plans, hub: hub, push: push}
}

// AssignStartDate schedules the whole plan in one transaction: prior
// schedule rows for the plan are replaced, and every day number is bound to
// start + (day-1). Every target date must be free of other plans' schedule
// rows and of completed days.
func (s *ScheduleService) AssignStartDate(userID uint, planID string, start time.Time) ([]models.ScheduledDay, error) {
	plan, err := s.plans.Get(userID, planID)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ScheduledDay, 0, len(plan.Days))
	dates := make([]string, 0, len(plan.Days))
	for i := range plan.Days {
		day := &plan.Days[i]
		date := start.AddDate(0, 0, day.DayNumber-1).Format(dateLayout)
		day.Date = date
		dates = append(dates, date)
		rows = append(rows, models.ScheduledDay{
			UserID:    userID,
			PlanID:    planID,
			DayNumber: day.DayNumber,
			Date:      date,
		})
	}

	taken, err := s.datesTaken(userID, planID, dates)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDateConflict
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND plan_id = ?", userID, planID).
			Delete(&models.ScheduledDay{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		return tx.Save(plan).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ChangeDayDate moves one scheduled day to a new date. The target date must
// not be taken by another scheduled or completed day of the same user.
func (s *ScheduleService) ChangeDayDate(userID uint, planID string, dayNumber int, newDate string) (*models.ScheduledDay, error) {
	if _, err := time.Parse(dateLayout, newDate); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", newDate, err)
	}

	var row models.ScheduledDay
	err := config.DB.Where("user_id = ? AND plan_id = ? AND day_number = ?", userID, planID, dayNumber).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	if row.Date == newDate {
		return &row, nil
	}

	taken, err := s.dateTaken(userID, newDate)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDateConflict
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		row.Date = newDate
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		return s.syncPlanDayDate(tx, userID, planID, dayNumber, newDate)
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CopyWeek clones the progress snapshots of a completed week onto a new
// date range. All target dates are validated before anything is written.
func (s *ScheduleService) CopyWeek(userID uint, sourceDates []string, targetStart time.Time) ([]models.DayProgress, error) {
	if len(sourceDates) == 0 {
		return nil, errors.New("no source dates given")
	}

	var source []models.DayProgress
	if err := config.DB.Where("user_id = ? AND date IN ?", userID, sourceDates).
		Order("date ASC").Find(&source).Error; err != nil {
		return nil, err
	}
	if len(source) != len(sourceDates) {
		return nil, errors.New("some source dates have no completed progress")
	}

	targets := CopyWeekDates(sourceDates, targetStart)
	for _, date := range targets {
		taken, err := s.dateTaken(userID, date)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDateConflict
		}
	}

	copies := make([]models.DayProgress, len(source))
	for i, src := range source {
		copies[i] = models.DayProgress{
			UserID:         userID,
			Date:           targets[i],
			CompletedMeals: append([]models.CompletedMeal(nil), src.CompletedMeals...),
			TotalNutrition: src.TotalNutrition,
			TotalCost:      src.TotalCost,
			MealsCount:     src.MealsCount,
		}
	}
	if err := config.DB.Create(&copies).Error; err != nil {
		return nil, err
	}
	return copies, nil
}

// CompleteDay freezes the given plan day into a DayProgress record. Calling
// it again for the same date leaves the single existing record in place.
func (s *ScheduleService) CompleteDay(userID uint, planID string, dayNumber int, date string) (*models.DayProgress, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	plan, err := s.plans.Get(userID, planID)
	if err != nil {
		return nil, err
	}
	var day *models.PlanDay
	for i := range plan.Days {
		if plan.Days[i].DayNumber == dayNumber {
			day = &plan.Days[i]
			break
		}
	}
	if day == nil {
		return nil, ErrDayNotFound
	}

	snapshot := models.DayProgress{
		UserID:         userID,
		Date:           date,
		CompletedMeals: make([]models.CompletedMeal, 0, len(day.Meals)),
		TotalNutrition: models.Nutrition{
			Calories:       day.Totals.Calories,
			ProteinG:       day.Totals.ProteinG,
			CarbohydratesG: day.Totals.CarbohydratesG,
			FatsG:          day.Totals.FatsG,
		},
		TotalCost:  day.Totals.CostEur,
		MealsCount: len(day.Meals),
	}
	for _, meal := range day.Meals {
		snapshot.CompletedMeals = append(snapshot.CompletedMeals, models.CompletedMeal{
			MealID:   meal.MealID,
			MealType: meal.MealType,
			Name:     meal.Name,
		})
	}

	var existing models.DayProgress
	err = config.DB.Where("user_id = ? AND date = ?", userID, date).First(&existing).Error
	switch {
	case err == nil:
		// already completed; idempotent
		return &existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	if err := config.DB.Create(&snapshot).Error; err != nil {
		return nil, err
	}

	s.notify(userID, "progress.completed", snapshot)
	if err := s.awardStreakBadges(userID); err != nil {
		// badge bookkeeping must not fail the completion
		log.Printf("awarding badges failed: %v", err)
	}
	return &snapshot, nil
}

// UncompleteDay removes the progress record for a date. Removing an absent
// record is a no-op.
func (s *ScheduleService) UncompleteDay(userID uint, date string) error {
	res := config.DB.Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.DayProgress{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.notify(userID, "progress.uncompleted", map[string]string{"date": date})
	}
	return nil
}

func (s *ScheduleService) ListScheduledDays(userID uint, planID string) ([]models.ScheduledDay, error) {
	var rows []models.ScheduledDay
	err := config.DB.Where("user_id = ? AND plan_id = ?", userID, planID).
		Order("day_number ASC").Find(&rows).Error
	return rows, err
}

func (s *ScheduleService) ListProgress(userID uint) ([]models.DayProgress, error) {
	var rows []models.DayProgress
	err := config.DB.Where("user_id = ?", userID).Order("date ASC").Find(&rows).Error
	return rows, err
}

// Streak recomputes streak info from the full progress history.
func (s *ScheduleService) Streak(userID uint) (models.StreakInfo, error) {
	progress, err := s.ListProgress(userID)
	if err != nil {
		return models.StreakInfo{}, err
	}
	return utils.CalculateStreak(progress, time.Now()), nil
}

// streakBadges maps a current-streak length to the badge it earns.
var streakBadges = map[int]string{
	3:  "streak_3",
	7:  "streak_7",
	14: "streak_14",
	30: "streak_30",
	45: "streak_45",
}

var badgeNames = map[string]string{
	"streak_3":  "3-Day Streak",
	"streak_7":  "One Week Strong",
	"streak_14": "Two Week Champion",
	"streak_30": "30-Day Master",
	"streak_45": "Unstoppable",
}

func (s *ScheduleService) awardStreakBadges(userID uint) error {
	info, err := s.Streak(userID)
	if err != nil {
		return err
	}
	badgeID, ok := streakBadges[info.CurrentStreak]
	if !ok {
		return nil
	}

	badge := models.Badge{
		UserID:   userID,
		BadgeID:  badgeID,
		Name:     badgeNames[badgeID],
		EarnedAt: time.Now().UTC(),
	}
	var existing models.Badge
	err = config.DB.Where("user_id = ? AND badge_id = ?", userID, badgeID).First(&existing).Error
	if err == nil {
		return nil // already earned
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := config.DB.Create(&badge).Error; err != nil {
		return err
	}

	s.notify(userID, "badge.earned", badge)
	if s.push != nil {
		s.push.PushToUser(userID, "New badge earned!", badge.Name, map[string]string{
			"badge_id": badgeID,
		})
	}
	return nil
}

func (s *ScheduleService) ListBadges(userID uint) ([]models.Badge, error) {
	var badges []models.Badge
	err := config.DB.Where("user_id = ?", userID).Order("earned_at ASC").Find(&badges).Error
	return badges, err
}

func (s *ScheduleService) notify(userID uint, kind string, payload any) {
	if s.hub != nil {
		s.hub.BroadcastEvent(userID, kind, payload)
	}
}

// datesTaken reports whether any of the dates is held by another plan's
// schedule or by a completed day. The plan's own rows don't count; they get
// replaced by the new assignment.
func (s *ScheduleService) datesTaken(userID uint, planID string, dates []string) (bool, error) {
	var n int64
	if err := config.DB.Model(&models.ScheduledDay{}).
		Where("user_id = ? AND plan_id <> ? AND date IN ?", userID, planID, dates).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := config.DB.Model(&models.DayProgress{}).
		Where("user_id = ? AND date IN ?", userID, dates).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// dateTaken checks both the schedule and the completion history.
func (s *ScheduleService) dateTaken(userID uint, date string) (bool, error) {
	var n int64
	if err := config.DB.Model(&models.ScheduledDay{}).
		Where("user_id = ? AND date = ?", userID, date).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := config.DB.Model(&models.DayProgress{}).
		Where("user_id = ? AND date = ?", userID, date).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// syncPlanDayDate mirrors a schedule change into the plan document.
func (s *ScheduleService) syncPlanDayDate(tx *gorm.DB, userID uint, planID string, dayNumber int, date string) error {
	var plan models.MealPlan
	if err := tx.Where("user_id = ? AND plan_id = ?", userID, planID).First(&plan).Error; err != nil {
		return err
	}
	for i := range plan.Days {
		if plan.Days[i].DayNumber == dayNumber {
			plan.Days[i].Date = date
			break
		}
	}
	return tx.Save(&plan).Error
}
