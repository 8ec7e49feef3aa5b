package services

import "github.com/Yogesh-SS7/AibotforPCOD/models"

// Lower bounds of each risk band. A score equal to a bound belongs to the
// higher band.
const (
	VeryHighRiskMinScore = 76
	HighRiskMinScore     = 51
	ModerateRiskMinScore = 26
)

// ClassifyRisk maps an aggregate score to its risk category.
func ClassifyRisk(score int) models.RiskCategory {
	switch {
	case score >= VeryHighRiskMinScore:
		return models.RiskVeryHigh
	case score >= HighRiskMinScore:
		return models.RiskHigh
	case score >= ModerateRiskMinScore:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}
