package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// ContentStore reads the static wellness documents.
type ContentStore interface {
	PrakritiQuestions(ctx context.Context) ([]models.PrakritiQuestion, error)
	YogaPoses(ctx context.Context) ([]models.YogaPose, error)
	Remedies(ctx context.Context) ([]models.Remedy, error)
}

// WellnessService serves the Prakriti quiz and the yoga and remedies listings.
type WellnessService interface {
	PrakritiQuestions(ctx context.Context) ([]models.PrakritiQuestion, error)
	AssessPrakriti(ctx context.Context, answers []models.PrakritiAnswer) (*models.PrakritiResult, error)
	YogaPoses(ctx context.Context) ([]models.YogaPose, error)
	Remedies(ctx context.Context) ([]models.Remedy, error)
}

type wellnessService struct {
	content ContentStore
}

// NewWellnessService creates a WellnessService over content.
func NewWellnessService(content ContentStore) WellnessService {
	return &wellnessService{content: content}
}

func (s *wellnessService) PrakritiQuestions(ctx context.Context) ([]models.PrakritiQuestion, error) {
	questions, err := s.content.PrakritiQuestions(ctx)
	if err != nil {
		zap.L().Error("[WellnessService] Failed to load Prakriti questions", zap.Error(err))
		return nil, err
	}
	return questions, nil
}

// AssessPrakriti scores a completed Prakriti quiz. Nothing is stored.
func (s *wellnessService) AssessPrakriti(ctx context.Context, answers []models.PrakritiAnswer) (*models.PrakritiResult, error) {
	result, err := ScorePrakriti(answers)
	if err != nil {
		return nil, err
	}
	zap.L().Info("[WellnessService] Prakriti assessed",
		zap.Int("answers", len(answers)),
		zap.String("prakriti", result.Prakriti),
	)
	return &result, nil
}

func (s *wellnessService) YogaPoses(ctx context.Context) ([]models.YogaPose, error) {
	poses, err := s.content.YogaPoses(ctx)
	if err != nil {
		zap.L().Error("[WellnessService] Failed to load yoga poses", zap.Error(err))
		return nil, err
	}
	return poses, nil
}

func (s *wellnessService) Remedies(ctx context.Context) ([]models.Remedy, error) {
	remedies, err := s.content.Remedies(ctx)
	if err != nil {
		zap.L().Error("[WellnessService] Failed to load remedies", zap.Error(err))
		return nil, err
	}
	return remedies, nil
}
