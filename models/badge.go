package models

import (
	"time"

	"gorm.io/gorm"
)

// Badge is an earned achievement, at most one per user and badge id.
type Badge struct {
	gorm.Model `json:"-"`
	UserID     uint   `json:"-" gorm:"index:idx_badge_user_id,unique;not null"`
	BadgeID    string `json:"badge_id" gorm:"size:32;index:idx_badge_user_id,unique;not null"`
	Name       string `json:"name"`
	EarnedAt   time.Time `json:"earned_at"`
}
