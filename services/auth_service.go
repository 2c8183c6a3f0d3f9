package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutrakids/models"
	"nutrakids/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db                *gorm.DB
	jwtSecret         string
	tokenTTL          time.Duration
	passwordMinLength int
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration, passwordMinLength int) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret, tokenTTL: tokenTTL, passwordMinLength: passwordMinLength}
}

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegisterParent creates the parent's household, the parent user and the
// membership in one transaction.
func (s *AuthService) RegisterParent(ctx context.Context, in SignupRequest) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: email and password required", ErrBadRequest)
	}
	if len(in.Password) < s.passwordMinLength {
		return nil, "", fmt.Errorf("%w: password too short", ErrBadRequest)
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	lastName := strings.TrimSpace(in.LastName)
	householdName := "My Family"
	if lastName != "" {
		householdName = lastName + " Family"
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashed,
		UserType:     models.UserTypeParent,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     lastName,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		hh := &models.Household{Name: householdName}
		if err := tx.Create(hh).Error; err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrEmailTaken
			}
			return err
		}
		return tx.Create(&models.HouseholdMember{
			HouseholdID: hh.ID,
			UserID:      user.ID,
			Role:        models.UserTypeParent,
		}).Error
	})
	if err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWT(s.jwtSecret, user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate checks a parent's credentials and issues a token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND user_type = ?", strings.ToLower(strings.TrimSpace(email)), models.UserTypeParent).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrBadCredential
		}
		return nil, "", err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrBadCredential
	}

	token, err := utils.GenerateJWT(s.jwtSecret, user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) FindUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) VerifyToken(token string) (uint, error) {
	return utils.ParseJWT(s.jwtSecret, token)
}

type ProfileInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfile changes the caller's display name; empty fields are kept.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		user.LastName = v
	}
	if err := s.db.WithContext(ctx).
		Model(user).
		Updates(map[string]any{"first_name": user.FirstName, "last_name": user.LastName}).Error; err != nil {
		return nil, err
	}
	return user, nil
}
