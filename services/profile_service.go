package services

import (
	"context"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
	"github.com/Yogesh-SS7/AibotforPCOD/repository"
)

// ErrUserIDRequired is returned when an operation needs a user id and got none.
var ErrUserIDRequired = eris.New("user ID is required")

// BMI category labels.
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal Weight"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

// ProfileService defines the interface for user profile operations.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// Get returns the stored profile, or nil when the user has none.
func (s *profileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.repo.GetProfile(ctx, userID)
}

// Upsert derives BMI fields, defaults the language and stores the profile.
func (s *profileService) Upsert(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	if profile == nil || profile.UserID == "" {
		return nil, ErrUserIDRequired
	}

	profile.Language = strings.TrimSpace(profile.Language)
	if profile.Language == "" {
		profile.Language = models.DefaultLanguage
	}

	if bmi, ok := ComputeBMI(profile.Weight, profile.Height); ok {
		profile.BMI = bmi
		profile.BMICategory = ClassifyBMI(bmi)
	} else {
		profile.BMI = 0
		profile.BMICategory = ""
	}

	stored, err := s.repo.UpsertProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	zap.L().Info("[ProfileService] Profile saved",
		zap.String("user_id", stored.UserID),
		zap.Float64("bmi", stored.BMI),
		zap.String("bmi_category", stored.BMICategory),
	)
	return stored, nil
}

// ComputeBMI returns weight (kg) over height (cm) in metres squared, rounded
// to one decimal. ok is false unless both measurements are positive.
func ComputeBMI(weightKg, heightCm float64) (float64, bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10, true
}

// ClassifyBMI maps a rounded BMI to its category.
func ClassifyBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 24.9:
		return BMINormal
	case bmi < 29.9:
		return BMIOverweight
	default:
		return BMIObese
	}
}
