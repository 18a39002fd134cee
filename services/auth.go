package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-manager/models"
	"github.com/vnkhanh/survey-manager/utils"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	db := s.db.WithContext(ctx)
	email = normalizeEmail(email)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: email, Password: hash}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Login trả về JWT chứa user id.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return "", nil, notFoundOr(err, ErrUserNotFound)
	}
	if !utils.CheckPassword(user.Password, password) {
		return "", nil, ErrWrongPassword
	}

	token, err := utils.GenerateToken(s.jwtSecret, user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return notFoundOr(err, ErrUserNotFound)
	}
	if !utils.CheckPassword(user.Password, currentPassword) {
		return ErrWrongPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return db.Model(&models.User{}).Where("id = ?", user.ID).Update("password", hash).Error
}
