package services

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// ErrNoPrakritiAnswers is returned when the Prakriti quiz is scored without
// an answer list.
var ErrNoPrakritiAnswers = eris.New("answers array required")

const mixedPrakriti = "Mixed"

var prakritiDescriptions = map[string]string{
	string(models.DoshaVata):  "You have a Vata constitution. You likely have a light build and creative mind, but may be prone to anxiety and dry skin.",
	string(models.DoshaPitta): "You have a Pitta constitution. You likely have a medium build and sharp intellect, but may overheat or get irritable.",
	string(models.DoshaKapha): "You have a Kapha constitution. You likely have a strong build and calm demeanor, but may struggle with lethargy.",
	mixedPrakriti:             "You have a mixed constitution (Tridoshic or Dual-Dosha). You show qualities of multiple types.",
}

// ScorePrakriti counts the doshas picked in answers and names the dominant
// one. Answers naming anything but the three doshas are ignored. A tie joins
// the tied doshas in Vata, Pitta, Kapha order, e.g. "Vata-Pitta", and gets
// the mixed description.
func ScorePrakriti(answers []models.PrakritiAnswer) (models.PrakritiResult, error) {
	if answers == nil {
		return models.PrakritiResult{}, ErrNoPrakritiAnswers
	}

	counts := make(map[models.Dosha]int, len(models.Doshas))
	for _, d := range models.Doshas {
		counts[d] = 0
	}
	for _, a := range answers {
		if _, ok := counts[a.SelectedType]; ok {
			counts[a.SelectedType]++
		}
	}

	top := 0
	for _, d := range models.Doshas {
		if counts[d] > top {
			top = counts[d]
		}
	}
	var dominant []string
	for _, d := range models.Doshas {
		if counts[d] == top {
			dominant = append(dominant, string(d))
		}
	}

	prakriti := strings.Join(dominant, "-")
	description, ok := prakritiDescriptions[prakriti]
	if !ok {
		description = prakritiDescriptions[mixedPrakriti]
	}
	return models.PrakritiResult{Prakriti: prakriti, Counts: counts, Description: description}, nil
}
