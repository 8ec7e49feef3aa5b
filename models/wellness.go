package models

// Dosha is one of the three Ayurvedic constitution types.
type Dosha string

const (
	DoshaVata  Dosha = "Vata"
	DoshaPitta Dosha = "Pitta"
	DoshaKapha Dosha = "Kapha"
)

// Doshas lists every dosha in reporting order.
var Doshas = []Dosha{DoshaVata, DoshaPitta, DoshaKapha}

// PrakritiOption is one answer of the Prakriti quiz; choosing it counts
// towards Type.
type PrakritiOption struct {
	Text string `json:"text" yaml:"text"`
	Type Dosha  `json:"type" yaml:"type"`
}

// PrakritiQuestion is one question of the Prakriti quiz.
type PrakritiQuestion struct {
	ID       string           `json:"id" yaml:"id"`
	Question string           `json:"question" yaml:"question"`
	Options  []PrakritiOption `json:"options" yaml:"options"`
}

// PrakritiAnswer is the dosha a user picked for one question.
type PrakritiAnswer struct {
	QuestionID   string `json:"questionId"`
	SelectedType Dosha  `json:"selectedType"`
}

// PrakritiResult is the outcome of a Prakriti quiz. Prakriti is a single dosha
// or, on a tie, the tied doshas joined with "-".
type PrakritiResult struct {
	Prakriti    string        `json:"prakriti"`
	Counts      map[Dosha]int `json:"counts"`
	Description string        `json:"description"`
}

// YogaPose is one entry of the yoga listing.
type YogaPose struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Duration     string `json:"duration" yaml:"duration"`
	Benefits     string `json:"benefits" yaml:"benefits"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

// Remedy is one entry of the home remedies listing.
type Remedy struct {
	ID        string `json:"id" yaml:"id"`
	Condition string `json:"condition" yaml:"condition"`
	Remedy    string `json:"remedy" yaml:"remedy"`
	Caution   string `json:"caution" yaml:"caution"`
}

// DiagnosticReport is the response of the joint pain screening.
type DiagnosticReport struct {
	Result           string       `json:"result"`
	RiskCategory     RiskCategory `json:"risk_category"`
	Score            int          `json:"score"`
	ObservedPatterns []string     `json:"observed_patterns"`
	Recommendations  []string     `json:"recommendations"`
	Disclaimer       string       `json:"disclaimer"`
}
