package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email             string `gorm:"uniqueIndex;not null"`
	Password          string `gorm:"not null"`
	FullName          string
	PreferredLanguage string `gorm:"size:5;default:'en'"`
	Verified          bool
	VerifyCode        string `gorm:"size:12"`
	ResetToken        string `gorm:"size:12"`
	ResetTokenExp     time.Time
}
