package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// ProfileLookup reads a stored profile. A missing profile is (nil, nil).
type ProfileLookup interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// AssessmentLookup reads the latest stored assessment. A missing one is (nil, nil).
type AssessmentLookup interface {
	GetLatest(ctx context.Context, userID string) (*models.AssessmentRecord, error)
}

// ContextAssembler gathers what the chat assistant may know about a user.
type ContextAssembler struct {
	profiles    ProfileLookup
	assessments AssessmentLookup
}

// NewContextAssembler creates a ContextAssembler over the two stores.
func NewContextAssembler(profiles ProfileLookup, assessments AssessmentLookup) *ContextAssembler {
	return &ContextAssembler{profiles: profiles, assessments: assessments}
}

// Assemble builds the chat context for userID on top of the caller's inline
// context. It never fails: a store that errors or has nothing for the user
// leaves its part of the context nil.
func (a *ContextAssembler) Assemble(ctx context.Context, userID string, inline map[string]interface{}) *models.ChatContext {
	out := &models.ChatContext{Inline: make(map[string]interface{}, len(inline))}
	for k, v := range inline {
		out.Inline[k] = v
	}
	if lang, ok := inline["language"].(string); ok {
		out.Language = lang
	}
	if userID == "" {
		out.RespondInLanguage = respondIn(out.Language)
		return out
	}

	var (
		profile    *models.UserProfile
		assessment *models.AssessmentRecord
	)

	// Each read swallows its own error so the group never cancels the other.
	var g errgroup.Group
	g.Go(func() error {
		p, err := a.profiles.GetProfile(ctx, userID)
		if err != nil {
			zap.L().Warn("[ContextAssembler] Profile unavailable", zap.String("user_id", userID), zap.Error(err))
			return nil
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		r, err := a.assessments.GetLatest(ctx, userID)
		if err != nil {
			zap.L().Warn("[ContextAssembler] Assessment unavailable", zap.String("user_id", userID), zap.Error(err))
			return nil
		}
		assessment = r
		return nil
	})
	_ = g.Wait()

	if profile != nil {
		out.UserProfile = &models.ProfileContext{
			Name:        profile.Name,
			Age:         profile.Age,
			Weight:      profile.Weight,
			Height:      profile.Height,
			BMI:         profile.BMI,
			BMICategory: profile.BMICategory,
			Language:    profile.Language,
		}
		if profile.Language != "" {
			out.Language = profile.Language
		}
	}
	if assessment != nil {
		out.PCODAssessment = &models.AssessmentContext{
			RiskCategory: assessment.RiskCategory,
			Score:        assessment.Score,
			Timestamp:    assessment.Timestamp,
		}
	}
	out.RespondInLanguage = respondIn(out.Language)

	zap.L().Debug("[ContextAssembler] Context assembled",
		zap.String("user_id", userID),
		zap.Bool("has_profile", out.UserProfile != nil),
		zap.Bool("has_assessment", out.PCODAssessment != nil),
		zap.String("language", out.Language),
	)
	return out
}

func respondIn(language string) bool {
	return language != "" && language != models.DefaultLanguage
}
