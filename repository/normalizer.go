package repository

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// Row is one spreadsheet row keyed by its column header.
type Row map[string]string

// Field is a logical column the normalizer needs from a row.
type Field string

const (
	FieldQuestionID   Field = "question_id"
	FieldQuestionText Field = "question_text"
	FieldQuestionType Field = "question_type"
	FieldSection      Field = "section"
	FieldOptionText   Field = "option_text"
	FieldOptionCode   Field = "option_code"
	FieldOptionScore  Field = "option_score"
)

// MissingQuestionText is used when no text column resolves for a question.
const MissingQuestionText = "Question Text Missing"

// DefaultSectionTitle groups spreadsheet rows that carry no section column.
const DefaultSectionTitle = "General"

// FieldResolver maps each logical field to the column labels accepted for
// it, in priority order.
type FieldResolver map[Field][]string

// DefaultFieldResolver returns the label table for the questionnaire master
// chart. The secondary labels are what the sheet yields when its real header
// row is missing and the first data row is read as headers.
func DefaultFieldResolver() FieldResolver {
	return FieldResolver{
		FieldQuestionID:   {"Question_ID", "Q1"},
		FieldQuestionText: {"Question", "Question ", "Age group"},
		FieldQuestionType: {"Question_Type", "Type", "MCQ"},
		FieldSection:      {"Section", "Demographics"},
		FieldOptionText:   {"Option_Text", "Below 18", "Option"},
		FieldOptionCode:   {"Option_Code", "A", "Code"},
		FieldOptionScore:  {"Risk_Score", "0"},
	}
}

// Resolve returns the value of the first label for field that is present in
// row with a non-blank value.
func (r FieldResolver) Resolve(row Row, field Field) (string, bool) {
	for _, label := range r[field] {
		if v, ok := row[label]; ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// NormalizeRows turns spreadsheet rows into sections of canonical questions.
// Rows without a resolvable question id are skipped. Rows sharing an id are
// grouped: the first row seeds the question and every row adds one option,
// in row order.
func (r FieldResolver) NormalizeRows(rows []Row) []models.Section {
	type pending struct {
		question   models.Question
		rawType    string
		sectionKey string
	}

	var (
		order        []string
		byID         = make(map[string]*pending)
		sectionOrder []string
		sectionSeen  = make(map[string]bool)
		skipped      int
	)

	for _, row := range rows {
		rawID, ok := r.Resolve(row, FieldQuestionID)
		if !ok {
			skipped++
			continue
		}
		id := strings.TrimSpace(rawID)

		p, exists := byID[id]
		if !exists {
			text, ok := r.Resolve(row, FieldQuestionText)
			if !ok {
				text = MissingQuestionText
			}
			section, ok := r.Resolve(row, FieldSection)
			if !ok {
				section = DefaultSectionTitle
			}
			section = strings.TrimSpace(section)
			rawType, _ := r.Resolve(row, FieldQuestionType)

			p = &pending{
				question:   models.Question{ID: id, Text: strings.TrimSpace(text)},
				rawType:    rawType,
				sectionKey: section,
			}
			byID[id] = p
			order = append(order, id)
			if !sectionSeen[section] {
				sectionSeen[section] = true
				sectionOrder = append(sectionOrder, section)
			}
		}

		optText, _ := r.Resolve(row, FieldOptionText)
		optCode, _ := r.Resolve(row, FieldOptionCode)
		optScore, _ := r.Resolve(row, FieldOptionScore)
		p.question.Options = append(p.question.Options, models.Option{
			Text:  optText,
			Value: optCode,
			Score: models.OptionScore(ParseScore(optScore)),
		})
	}

	if skipped > 0 {
		zap.L().Debug("[Normalizer] Skipped rows without a question id", zap.Int("rows", skipped))
	}

	questionsBySection := make(map[string][]models.Question, len(sectionOrder))
	for _, id := range order {
		p := byID[id]
		p.question.Type = NormalizeQuestionType(p.rawType, len(p.question.Options) > 0)
		questionsBySection[p.sectionKey] = append(questionsBySection[p.sectionKey], p.question)
	}

	sections := make([]models.Section, 0, len(sectionOrder))
	for _, title := range sectionOrder {
		sections = append(sections, models.Section{
			SectionID: sectionID(title),
			Title:     title,
			Questions: questionsBySection[title],
		})
	}
	return sections
}

// ParseScore reads the leading integer of s, ignoring surrounding space.
// Anything without a leading integer is 0.
func ParseScore(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	n, digits := 0, 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		digits++
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// NormalizeQuestionType maps a free-form type cell to a QuestionType.
// An unrecognised or missing type falls back to single_choice for questions
// with options and text_input otherwise.
func NormalizeQuestionType(raw string, hasOptions bool) models.QuestionType {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.NewReplacer("-", "_", " ", "_").Replace(t)

	switch {
	case t == "single_choice" || t == "single" || t == "mcq" || t == "radio":
		return models.QuestionTypeSingleChoice
	case t == "multi_choice" || t == "multi" || t == "multiple_choice" || t == "msq" || t == "checkbox":
		return models.QuestionTypeMultiChoice
	case strings.HasPrefix(t, "number"):
		return models.QuestionTypeNumberInput
	case strings.HasPrefix(t, "text"):
		return models.QuestionTypeTextInput
	}

	if hasOptions {
		return models.QuestionTypeSingleChoice
	}
	return models.QuestionTypeTextInput
}

func sectionID(title string) string {
	id := strings.ToLower(strings.TrimSpace(title))
	return strings.Join(strings.Fields(id), "_")
}
