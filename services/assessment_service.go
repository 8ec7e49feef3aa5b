package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
	"github.com/Yogesh-SS7/AibotforPCOD/repository"
)

// ScreeningDisclaimer is attached to every assessment report.
const ScreeningDisclaimer = "This tool is for screening purposes only and does not replace professional medical advice."

// DiagnosticDisclaimer is attached to every joint pain screening report.
const DiagnosticDisclaimer = "DISCLAIMER: This is a screening tool for awareness ONLY. It does NOT provide a medical diagnosis. Please consult a qualified healthcare professional."

var (
	lowRiskRecommendations = []string{
		"Continue healthy lifestyle",
		"Yearly checkups",
	}
	elevatedRiskRecommendations = []string{
		"Consult a gynecologist",
		"Focus on diet and exercise",
		"Monitor symptoms",
	}
	jointPainRecommendations = []string{
		"Consult a Doctor for clinical evaluation.",
		"Maintain a balanced, nutritious diet.",
		"Ensure 7-8 hours of quality sleep.",
		"Engage in regular physical activity like Yoga.",
		"Practice stress management techniques.",
	}
)

// AssessmentService defines the interface for questionnaire operations.
type AssessmentService interface {
	ListQuestions(ctx context.Context) ([]models.Question, models.SurveyMeta)
	Submit(ctx context.Context, userID string, answers models.AnswerSet) (*models.AssessmentReport, error)
	Diagnose(ctx context.Context, answers models.AnswerSet) (*models.DiagnosticReport, error)
	Latest(ctx context.Context, userID string) (*models.AssessmentRecord, error)
	Reload(ctx context.Context) int
}

// assessmentService implements the AssessmentService interface.
type assessmentService struct {
	repo    repository.AssessmentRepository
	catalog *CatalogLoader
	now     func() time.Time
}

// NewAssessmentService creates a new instance of AssessmentService.
func NewAssessmentService(repo repository.AssessmentRepository, catalog *CatalogLoader) AssessmentService {
	return &assessmentService{repo: repo, catalog: catalog, now: time.Now}
}

// ListQuestions returns every question of the current catalog in source order.
func (s *assessmentService) ListQuestions(ctx context.Context) ([]models.Question, models.SurveyMeta) {
	c := s.catalog.Catalog(ctx)
	return c.ListAll(), c.Meta()
}

// Submit scores answers and, when userID is set, records the result as the
// user's latest assessment. A failed save is logged; the report is still
// returned.
func (s *assessmentService) Submit(ctx context.Context, userID string, answers models.AnswerSet) (*models.AssessmentReport, error) {
	result, err := Score(s.catalog.Catalog(ctx), answers)
	if err != nil {
		return nil, err
	}

	report := &models.AssessmentReport{
		RiskCategory:     result.Category,
		Score:            result.Score,
		ObservedPatterns: result.Patterns,
		Recommendations:  recommendationsFor(result.Category),
		Disclaimer:       ScreeningDisclaimer,
	}

	zap.L().Info("[AssessmentService] Assessment scored",
		zap.String("user_id", userID),
		zap.Int("answers", len(answers)),
		zap.Int("score", result.Score),
		zap.String("risk_category", string(result.Category)),
	)

	if userID != "" {
		s.saveLatest(ctx, userID, answers, result)
	}
	return report, nil
}

func (s *assessmentService) saveLatest(ctx context.Context, userID string, answers models.AnswerSet, result models.AssessmentResult) {
	encoded, err := json.Marshal(answers)
	if err != nil {
		zap.L().Warn("[AssessmentService] Could not encode answers, storing none", zap.String("user_id", userID), zap.Error(err))
		encoded = []byte("{}")
	}

	record := &models.AssessmentRecord{
		UserID:       userID,
		RiskCategory: result.Category,
		Score:        result.Score,
		Answers:      string(encoded),
		Timestamp:    s.now().UTC(),
	}
	if err := s.repo.SaveLatest(ctx, record); err != nil {
		zap.L().Error("[AssessmentService] Failed to store latest assessment", zap.String("user_id", userID), zap.Error(err))
	}
}

// Diagnose runs the joint pain screening: the same questionnaire and scoring
// with its own recommendations. Nothing is stored.
func (s *assessmentService) Diagnose(ctx context.Context, answers models.AnswerSet) (*models.DiagnosticReport, error) {
	result, err := Score(s.catalog.Catalog(ctx), answers)
	if err != nil {
		return nil, err
	}
	zap.L().Info("[AssessmentService] Joint pain screening scored",
		zap.Int("answers", len(answers)),
		zap.Int("score", result.Score),
		zap.String("risk_category", string(result.Category)),
	)
	return &models.DiagnosticReport{
		Result:           "Risk Assessment: " + string(result.Category),
		RiskCategory:     result.Category,
		Score:            result.Score,
		ObservedPatterns: result.Patterns,
		Recommendations:  append([]string(nil), jointPainRecommendations...),
		Disclaimer:       DiagnosticDisclaimer,
	}, nil
}

// Latest returns the user's latest assessment, or nil when there is none.
func (s *assessmentService) Latest(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.repo.GetLatest(ctx, userID)
}

// Reload drops the memoised catalog and rebuilds it, returning the number of
// questions now loaded.
func (s *assessmentService) Reload(ctx context.Context) int {
	s.catalog.Invalidate()
	n := s.catalog.Catalog(ctx).Len()
	zap.L().Info("[AssessmentService] Questionnaire reloaded", zap.Int("questions", n))
	return n
}

func recommendationsFor(category models.RiskCategory) []string {
	src := elevatedRiskRecommendations
	if category == models.RiskLow {
		src = lowRiskRecommendations
	}
	return append([]string(nil), src...)
}
