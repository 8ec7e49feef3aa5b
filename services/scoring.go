package services

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// ErrNoAnswers is returned when scoring is asked for without an answer set.
var ErrNoAnswers = eris.New("no answers provided")

// Score sums the option weights selected by answers and classifies the total.
//
// Answers for unknown questions, and values that match no option, add
// nothing. Client answer sets may lag the current questionnaire, so neither
// is an error. Only a nil answer set is rejected.
func Score(catalog *Catalog, answers models.AnswerSet) (models.AssessmentResult, error) {
	if answers == nil {
		return models.AssessmentResult{}, ErrNoAnswers
	}
	if catalog == nil {
		catalog = EmptyCatalog()
	}

	total := 0
	for questionID, value := range answers {
		question, ok := catalog.ByID(questionID)
		if !ok {
			zap.L().Debug("[Scoring] Ignoring answer for unknown question", zap.String("question_id", questionID))
			continue
		}
		total += scoreAnswer(&question, value)
	}

	return models.AssessmentResult{
		Score:    total,
		Category: ClassifyRisk(total),
		Patterns: []string{},
	}, nil
}

// scoreAnswer returns the contribution of one answer.
func scoreAnswer(q *models.Question, value models.AnswerValue) int {
	if !q.Type.IsChoice() {
		// number_input and text_input are collected for display only.
		return 0
	}
	switch q.Type {
	case models.QuestionTypeSingleChoice:
		text, ok := value.Single()
		if !ok {
			if value.IsList() {
				zap.L().Debug("[Scoring] List answer to a single choice question scores nothing", zap.String("question_id", q.ID))
			}
			return 0
		}
		return optionScore(q, text)
	default:
		sum := 0
		for _, text := range value.Texts() {
			sum += optionScore(q, text)
		}
		return sum
	}
}

func optionScore(q *models.Question, text string) int {
	opt, ok := q.FindOption(text)
	if !ok {
		zap.L().Debug("[Scoring] Answer matches no option",
			zap.String("question_id", q.ID),
			zap.String("answer", text),
		)
		return 0
	}
	return int(opt.Score)
}
