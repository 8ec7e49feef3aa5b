package models

import "time"

// DefaultLanguage is the language the assistant answers in unless a profile says otherwise.
const DefaultLanguage = "English"

// UserProfile is the stored profile of an app user.
type UserProfile struct {
	UserID      string    `json:"user_id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender,omitempty"`
	Phone       string    `json:"phone,omitempty" gorm:"index"`
	Weight      float64   `json:"weight"` // kg
	Height      float64   `json:"height"` // cm
	BMI         float64   `json:"bmi"`
	BMICategory string    `json:"bmi_category"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for UserProfile.
func (UserProfile) TableName() string {
	return "user_profiles"
}
