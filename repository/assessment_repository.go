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

// AssessmentRepository stores the latest assessment of each user.
type AssessmentRepository interface {
	SaveLatest(ctx context.Context, record *models.AssessmentRecord) error
	GetLatest(ctx context.Context, userID string) (*models.AssessmentRecord, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository creates a gorm backed AssessmentRepository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

// SaveLatest inserts the record, or replaces the user's previous one.
func (r *assessmentRepository) SaveLatest(ctx context.Context, record *models.AssessmentRecord) error {
	if record.UserID == "" {
		return eris.New("user ID cannot be empty")
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"risk_category", "score", "answers", "timestamp", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		zap.L().Error("[AssessmentRepository] Failed to save latest assessment", zap.String("user_id", record.UserID), zap.Error(err))
		return eris.Wrapf(err, "failed to save assessment for user %s", record.UserID)
	}

	zap.L().Info("[AssessmentRepository] Saved latest assessment",
		zap.String("user_id", record.UserID),
		zap.Int("score", record.Score),
		zap.String("risk_category", string(record.RiskCategory)),
	)
	return nil
}

// GetLatest returns the user's latest assessment, or nil when there is none.
func (r *assessmentRepository) GetLatest(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	var record models.AssessmentRecord
	err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "failed to fetch assessment for user %s", userID)
	}
	return &record, nil
}
