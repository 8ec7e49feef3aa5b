package models

import (
	"encoding/json"
	"time"
)

// RiskCategory is the ordered label summarising an aggregate score.
type RiskCategory string

const (
	RiskLow      RiskCategory = "Low Risk"
	RiskModerate RiskCategory = "Moderate Risk"
	RiskHigh     RiskCategory = "High Risk"
	RiskVeryHigh RiskCategory = "Very High Risk"
)

// AnswerValue is one submitted answer as it arrived: a scalar or a list.
// Only string elements can ever match option text; numbers and booleans are
// kept in the raw form for storage but match nothing.
type AnswerValue struct {
	texts []string
	list  bool
	raw   json.RawMessage
}

// TextAnswer builds a scalar string answer.
func TextAnswer(s string) AnswerValue {
	return AnswerValue{texts: []string{s}}
}

// ListAnswer builds a list answer, as sent for multi_choice questions.
func ListAnswer(values ...string) AnswerValue {
	return AnswerValue{texts: append([]string{}, values...), list: true}
}

// Single returns the answer text when the answer is a scalar string.
func (a AnswerValue) Single() (string, bool) {
	if a.list || len(a.texts) != 1 {
		return "", false
	}
	return a.texts[0], true
}

// Texts returns the string elements of the answer. A scalar string answer
// is returned as a one-element slice.
func (a AnswerValue) Texts() []string {
	return a.texts
}

// IsList reports whether the answer was submitted as a list.
func (a AnswerValue) IsList() bool {
	return a.list
}

// UnmarshalJSON accepts any JSON value. Strings, and strings inside an
// array, become matchable texts; everything else is kept only in raw form.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = AnswerValue{raw: append(json.RawMessage(nil), data...)}
	switch v := raw.(type) {
	case []interface{}:
		a.list = true
		for _, item := range v {
			if s, ok := item.(string); ok {
				a.texts = append(a.texts, s)
			}
		}
	case string:
		a.texts = []string{v}
	}
	return nil
}

// MarshalJSON writes the answer back in the shape it was received.
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.raw != nil {
		return a.raw, nil
	}
	if a.list {
		if a.texts == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.texts)
	}
	if len(a.texts) == 1 {
		return json.Marshal(a.texts[0])
	}
	return []byte("null"), nil
}

// AnswerSet maps question id to the submitted answer.
type AnswerSet map[string]AnswerValue

// AssessmentResult is the outcome of one scoring call.
type AssessmentResult struct {
	Score    int          `json:"score"`
	Category RiskCategory `json:"category"`
	Patterns []string     `json:"patterns"` // Reserved; the scoring rule never fills it
}

// AssessmentReport is the response to a questionnaire submission.
type AssessmentReport struct {
	RiskCategory     RiskCategory `json:"risk_category"`
	Score            int          `json:"score"`
	ObservedPatterns []string     `json:"observed_patterns"`
	Recommendations  []string     `json:"recommendations"`
	Disclaimer       string       `json:"disclaimer"`
}

// AssessmentRecord is the most recent assessment stored for a user.
// UserID is the primary key, so saving replaces the previous record.
type AssessmentRecord struct {
	UserID       string       `json:"user_id" gorm:"primaryKey"`
	RiskCategory RiskCategory `json:"risk_category" gorm:"type:varchar(32);not null"`
	Score        int          `json:"score"`
	Answers      string       `json:"-" gorm:"type:text"` // JSON-encoded AnswerSet
	Timestamp    time.Time    `json:"timestamp"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName specifies the table name for AssessmentRecord.
func (AssessmentRecord) TableName() string {
	return "latest_assessments"
}
