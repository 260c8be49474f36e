package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/petrepopa00/gurmaio/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"
)

// PushService delivers meal reminders and badge notifications through SNS
// platform endpoints. Delivery failures are swallowed; a missed push never
// affects application state.
type PushService struct {
	db             *gorm.DB
	sns            *awssns.Client
	fcmPlatformArn string
}

func NewPushService(db *gorm.DB) (*PushService, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "eu-central-1"
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		db:             db,
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: os.Getenv("SNS_FCM_ARN"),
	}, nil
}

func (p *PushService) tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) platformArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.fcmPlatformArn == "" {
			return "", errors.New("SNS_FCM_ARN not set")
		}
		return p.fcmPlatformArn, nil
	default:
		return "", errors.New("unknown platform")
	}
}

func (p *PushService) RegisterDevice(userID uint, platform, token string) (*models.UserDevice, error) {
	appArn, err := p.platformArn(platform)
	if err != nil {
		return nil, err
	}

	out, err := p.sns.CreatePlatformEndpoint(context.TODO(), &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.UserDevice{
		UserID:      userID,
		Platform:    strings.ToLower(platform),
		TokenHash:   p.tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
	}
	var existing models.UserDevice
	if err := p.db.Where("user_id = ? AND token_hash = ?", userID, dev.TokenHash).First(&existing).Error; err == nil {
		existing.EndpointARN = dev.EndpointARN
		existing.Platform = dev.Platform
		if err := p.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err := p.db.Create(dev).Error; err != nil {
		return nil, err
	}
	return dev, nil
}

func (p *PushService) RemoveDevice(userID uint, token string) error {
	return p.db.Where("user_id = ? AND token_hash = ?", userID, p.tokenHash(token)).
		Delete(&models.UserDevice{}).Error
}

func (p *PushService) PushToUser(userID uint, title, body string, data map[string]string) {
	var endpoints []models.UserDevice
	if err := p.db.Where("user_id = ? AND enabled = ?", userID, true).Find(&endpoints).Error; err != nil {
		return
	}
	if len(endpoints) == 0 {
		return
	}

	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
		},
	}

	raw, _ := json.Marshal(msg)
	for _, d := range endpoints {
		_, _ = p.sns.Publish(context.TODO(), &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
	}
}

// GetReminderSetting returns the user's reminder config, defaulting to a
// disabled 18:30 reminder when none is stored yet.
func (p *PushService) GetReminderSetting(userID uint) (*models.ReminderSetting, error) {
	var setting models.ReminderSetting
	err := p.db.Where("user_id = ?", userID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ReminderSetting{UserID: userID, Enabled: false, TimeOfDay: "18:30"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpsertReminderSetting stores when (and whether) the daily meal reminder
// should fire.
func (p *PushService) UpsertReminderSetting(userID uint, enabled bool, timeOfDay string) (*models.ReminderSetting, error) {
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return nil, errors.New("time must be HH:MM")
	}
	var setting models.ReminderSetting
	err := p.db.Where("user_id = ?", userID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.ReminderSetting{UserID: userID, Enabled: enabled, TimeOfDay: timeOfDay}
		if err := p.db.Create(&setting).Error; err != nil {
			return nil, err
		}
		return &setting, nil
	}
	if err != nil {
		return nil, err
	}
	setting.Enabled = enabled
	setting.TimeOfDay = timeOfDay
	if err := p.db.Save(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// SendMealReminder pushes the daily nudge for today's scheduled meals.
func (p *PushService) SendMealReminder(userID uint) {
	p.PushToUser(userID, "Time to cook!", "Check today's meals on your plan.", map[string]string{
		"kind": "meal_reminder",
	})
}
