package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/petrepopa00/gurmaio/services"

	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	Schedule *services.ScheduleService
}

func NewScheduleController(schedule *services.ScheduleService) *ScheduleController {
	return &ScheduleController{Schedule: schedule}
}

func scheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
	case errors.Is(err, services.ErrDayNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "day not found"})
	case errors.Is(err, services.ErrDateConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "another day is already scheduled on that date"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

type assignStartInput struct {
	StartDate string `json:"start_date" binding:"required"`
}

func (sc *ScheduleController) AssignStartDate(c *gin.Context) {
	uid := c.GetUint("userID")

	var input assignStartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseDate(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}

	days, err := sc.Schedule.AssignStartDate(uid, c.Param("planId"), start)
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheduled_days": days})
}

type changeDayInput struct {
	DayNumber int    `json:"day_number" binding:"required,gt=0"`
	NewDate   string `json:"new_date" binding:"required"`
}

func (sc *ScheduleController) ChangeDayDate(c *gin.Context) {
	uid := c.GetUint("userID")

	var input changeDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := parseDate(input.NewDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_date must be YYYY-MM-DD"})
		return
	}

	day, err := sc.Schedule.ChangeDayDate(uid, c.Param("planId"), input.DayNumber, input.NewDate)
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

type copyWeekInput struct {
	SourceDates []string `json:"source_dates" binding:"required"`
	TargetStart string   `json:"target_start" binding:"required"`
}

func (sc *ScheduleController) CopyWeek(c *gin.Context) {
	uid := c.GetUint("userID")

	var input copyWeekInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, err := parseDate(input.TargetStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_start must be YYYY-MM-DD"})
		return
	}

	copied, err := sc.Schedule.CopyWeek(uid, input.SourceDates, target)
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"copied": copied})
}

type completeDayInput struct {
	PlanID    string `json:"plan_id" binding:"required"`
	DayNumber int    `json:"day_number" binding:"required,gt=0"`
	Date      string `json:"date" binding:"required"`
}

func (sc *ScheduleController) CompleteDay(c *gin.Context) {
	uid := c.GetUint("userID")

	var input completeDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := parseDate(input.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	progress, err := sc.Schedule.CompleteDay(uid, input.PlanID, input.DayNumber, input.Date)
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (sc *ScheduleController) UncompleteDay(c *gin.Context) {
	uid := c.GetUint("userID")

	date := c.Param("date")
	if _, err := parseDate(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	if err := sc.Schedule.UncompleteDay(uid, date); err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "day uncompleted"})
}

func (sc *ScheduleController) ListScheduledDays(c *gin.Context) {
	uid := c.GetUint("userID")

	days, err := sc.Schedule.ListScheduledDays(uid, c.Param("planId"))
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheduled_days": days})
}

func (sc *ScheduleController) ListProgress(c *gin.Context) {
	uid := c.GetUint("userID")

	progress, err := sc.Schedule.ListProgress(uid)
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

func (sc *ScheduleController) Streak(c *gin.Context) {
	uid := c.GetUint("userID")

	streak, err := sc.Schedule.Streak(uid)
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, streak)
}

func (sc *ScheduleController) Badges(c *gin.Context) {
	uid := c.GetUint("userID")

	badges, err := sc.Schedule.ListBadges(uid)
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}
