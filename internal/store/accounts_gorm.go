package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"child-clinic-server/internal/models"
)

// GormUserStore is the database-backed UserStore.
type GormUserStore struct {
	DB *gorm.DB
}

// NewGormUserStore creates a new GormUserStore.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: db}
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	return s.DB.WithContext(ctx).Create(user).Error
}

func (s *GormUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *GormUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *GormUserStore) ListAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormUserStore) DeleteByID(ctx context.Context, id string) error {
	result := s.DB.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormRefreshTokenStore is the database-backed RefreshTokenStore.
type GormRefreshTokenStore struct {
	DB *gorm.DB
}

// NewGormRefreshTokenStore creates a new GormRefreshTokenStore.
func NewGormRefreshTokenStore(db *gorm.DB) *GormRefreshTokenStore {
	return &GormRefreshTokenStore{DB: db}
}

func (s *GormRefreshTokenStore) Create(ctx context.Context, token *models.RefreshToken) error {
	return s.DB.WithContext(ctx).Create(token).Error
}

func (s *GormRefreshTokenStore) GetActive(ctx context.Context, token, userID string, now time.Time) (models.RefreshToken, error) {
	var stored models.RefreshToken
	err := s.DB.WithContext(ctx).
		Where("token = ? AND user_id = ? AND is_revoked = ? AND expires_at > ?", token, userID, false, now).
		First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RefreshToken{}, ErrNotFound
		}
		return models.RefreshToken{}, err
	}
	return stored, nil
}

func (s *GormRefreshTokenStore) GetUnrevoked(ctx context.Context, token string) (models.RefreshToken, error) {
	var stored models.RefreshToken
	err := s.DB.WithContext(ctx).
		Where("token = ? AND is_revoked = ?", token, false).
		First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RefreshToken{}, ErrNotFound
		}
		return models.RefreshToken{}, err
	}
	return stored, nil
}

func (s *GormRefreshTokenStore) Revoke(ctx context.Context, token *models.RefreshToken) error {
	token.IsRevoked = true
	return s.DB.WithContext(ctx).Save(token).Error
}
