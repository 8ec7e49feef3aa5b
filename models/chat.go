package models

import (
	"time"
)

// ChatMessage is one turn of a user's conversation with the assistant.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp"`
}

// ProfileContext is the subset of a UserProfile forwarded to the assistant.
type ProfileContext struct {
	Name        string  `json:"name,omitempty"`
	Age         int     `json:"age,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
	Height      float64 `json:"height,omitempty"`
	BMI         float64 `json:"bmi,omitempty"`
	BMICategory string  `json:"bmi_category,omitempty"`
	Language    string  `json:"language,omitempty"`
}

// AssessmentContext is the subset of the latest assessment forwarded to the assistant.
type AssessmentContext struct {
	RiskCategory RiskCategory `json:"risk_category"`
	Score        int          `json:"score"`
	Timestamp    time.Time    `json:"timestamp"`
}

// ChatContext is the privacy-filtered summary handed to the text generator.
// Absent sources leave their field nil; that is how missing data is signalled.
type ChatContext struct {
	Inline            map[string]interface{} `json:"-"`
	UserProfile       *ProfileContext        `json:"userProfile,omitempty"`
	PCODAssessment    *AssessmentContext     `json:"pcodAssessment,omitempty"`
	Language          string                 `json:"language,omitempty"`
	RespondInLanguage bool                   `json:"-"`
}

// IsEmpty reports whether the context carries nothing at all.
func (c *ChatContext) IsEmpty() bool {
	return c == nil || (len(c.Inline) == 0 && c.UserProfile == nil && c.PCODAssessment == nil)
}

// AsMap flattens the context into the object serialised for the assistant.
// Inline keys come first and are overwritten by assembled fields.
func (c *ChatContext) AsMap() map[string]interface{} {
	out := make(map[string]interface{}, len(c.Inline)+3)
	for k, v := range c.Inline {
		out[k] = v
	}
	if c.UserProfile != nil {
		out["userProfile"] = c.UserProfile
	}
	if c.PCODAssessment != nil {
		out["pcodAssessment"] = c.PCODAssessment
	}
	if c.Language != "" {
		out["language"] = c.Language
	}
	return out
}

// ChatReply is the assistant's answer to one user message.
type ChatReply struct {
	Response  string    `json:"response"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}
