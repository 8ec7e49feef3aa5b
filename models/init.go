package models

// InitResponse defines the structure for the /api/init endpoint response.
type InitResponse struct {
	UserID            string     `json:"user_id,omitempty"`
	Questionnaire     SurveyMeta `json:"questionnaire"`
	QuestionCount     int        `json:"question_count"`
	HasProfile        bool       `json:"has_profile"`
	HasBMI            bool       `json:"has_bmi"`              // Drives the "use the BMI Calculator" hint
	HasAssessment     bool       `json:"has_assessment"`       // Drives the "take the PCOD Symptom Check" hint
	PreferredLanguage string     `json:"preferred_language"`
}
