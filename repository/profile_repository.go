package repository

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// ProfileRepository defines the interface for interacting with user profile data.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	UpsertProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetProfile returns the stored profile, or nil and no error when the user
// has none.
func (r *profileRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, eris.New("user ID cannot be empty")
	}

	var profile models.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Debug("[ProfileRepository] No profile found", zap.String("user_id", userID))
			return nil, nil
		}
		zap.L().Error("[ProfileRepository] Failed to fetch profile", zap.String("user_id", userID), zap.Error(err))
		return nil, eris.Wrapf(err, "failed to fetch profile for user %s", userID)
	}
	return &profile, nil
}

// UpsertProfile creates the profile or overwrites the stored one. UserID is
// the primary key, so the write is a single INSERT ... ON CONFLICT.
func (r *profileRepository) UpsertProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	if profile == nil || profile.UserID == "" {
		return nil, eris.New("user ID cannot be empty")
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "age", "gender", "phone", "weight", "height",
			"bmi", "bmi_category", "language", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		zap.L().Error("[ProfileRepository] Failed to upsert profile", zap.String("user_id", profile.UserID), zap.Error(err))
		return nil, eris.Wrapf(err, "failed to upsert profile for user %s", profile.UserID)
	}

	// On conflict the argument keeps its own CreatedAt; return the stored row.
	var stored models.UserProfile
	if err := r.db.WithContext(ctx).First(&stored, "user_id = ?", profile.UserID).Error; err != nil {
		return nil, eris.Wrapf(err, "failed to fetch profile for user %s after upsert", profile.UserID)
	}

	zap.L().Info("[ProfileRepository] Upserted profile", zap.String("user_id", stored.UserID))
	return &stored, nil
}
