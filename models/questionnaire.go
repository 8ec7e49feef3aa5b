package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// QuestionType defines how an answer to a question is scored.
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single_choice" // Radio buttons
	QuestionTypeMultiChoice  QuestionType = "multi_choice"  // Checkboxes
	QuestionTypeNumberInput  QuestionType = "number_input"  // Numeric entry, display only
	QuestionTypeTextInput    QuestionType = "text_input"    // Free text, display only
)

// IsChoice reports whether answers to this type are matched against options.
func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeSingleChoice || t == QuestionTypeMultiChoice
}

// Option is one selectable answer of a choice question.
// Answers are matched against Text; Value is carried for clients only.
// Documents may name Value "code" instead.
type Option struct {
	Text  string      `json:"text" yaml:"text"`
	Value string      `json:"value,omitempty" yaml:"value,omitempty"`
	Score OptionScore `json:"score" yaml:"score"`
}

type plainOption Option

type codedOption struct {
	plainOption `yaml:",inline"`
	Code        string `json:"code" yaml:"code"`
}

func (o codedOption) option() Option {
	opt := Option(o.plainOption)
	if opt.Value == "" {
		opt.Value = o.Code
	}
	return opt
}

// UnmarshalJSON decodes an option, taking "code" when "value" is absent.
func (o *Option) UnmarshalJSON(data []byte) error {
	var aux codedOption
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*o = aux.option()
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (o *Option) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var aux codedOption
	if err := unmarshal(&aux); err != nil {
		return err
	}
	*o = aux.option()
	return nil
}

// OptionScore is the risk weight of an option. Documents authored by hand
// carry it as a number, a numeric string, or not at all; anything that is not
// an integer decodes to 0.
type OptionScore int

// UnmarshalJSON accepts numbers and numeric strings and never fails.
func (s *OptionScore) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = 0
		return nil
	}
	*s = OptionScore(coerceScore(raw))
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (s *OptionScore) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		*s = 0
		return nil
	}
	*s = OptionScore(coerceScore(raw))
	return nil
}

func coerceScore(raw interface{}) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Question is a canonical catalog entry. Section and SectionID are display
// metadata and never affect scoring.
type Question struct {
	ID        string       `json:"id" yaml:"id"`
	Text      string       `json:"text" yaml:"text"`
	Type      QuestionType `json:"type" yaml:"type"`
	Options   []Option     `json:"options,omitempty" yaml:"options,omitempty"`
	Section   string       `json:"section,omitempty" yaml:"-"`
	SectionID string       `json:"section_id,omitempty" yaml:"-"`
}

// FindOption returns the first option whose text equals text exactly.
func (q *Question) FindOption(text string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Text == text {
			return opt, true
		}
	}
	return Option{}, false
}

// Section groups questions at the source.
type Section struct {
	SectionID string     `json:"section_id" yaml:"section_id"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// SurveyMeta describes a questionnaire document.
type SurveyMeta struct {
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version" yaml:"version"`
}

// QuestionnaireDocument is the pre-structured ingestion format: questions
// already grouped into sections.
type QuestionnaireDocument struct {
	SurveyMeta SurveyMeta `json:"survey_meta" yaml:"survey_meta"`
	Sections   []Section  `json:"sections" yaml:"sections"`
}
