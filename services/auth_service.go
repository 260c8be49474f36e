package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petrepopa00/gurmaio/config"
	"github.com/petrepopa00/gurmaio/models"
	"github.com/petrepopa00/gurmaio/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email not verified")
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func RegisterUser(email, password, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:             email,
		Password:          hash,
		FullName:          strings.TrimSpace(fullName),
		PreferredLanguage: "en",
		Verified:          false,
		VerifyCode:        utils.GenerateRandomToken(6),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Best-effort: the account exists even if the mail bounces.
	_ = utils.SendVerificationEmail(user.Email, user.VerifyCode)

	return &user, nil
}

func VerifyEmail(email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return ErrInvalidCredentials
	}
	if user.Verified {
		return nil
	}
	if user.VerifyCode == "" || user.VerifyCode != code {
		return errors.New("invalid verification code")
	}
	user.Verified = true
	user.VerifyCode = ""
	return config.DB.Save(&user).Error
}

// AuthenticateUser returns a signed JWT for valid credentials. Accounts
// that never confirmed their email get ErrNotVerified instead.
func AuthenticateUser(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !CheckPasswordHash(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return "", nil, ErrNotVerified
	}
	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// SetPreferredLanguage updates the language used for plan and shopping list
// translations.
func SetPreferredLanguage(userID uint, lang string) error {
	if !IsSupportedLanguage(lang) {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return config.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("preferred_language", lang).Error
}
