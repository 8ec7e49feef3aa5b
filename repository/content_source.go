package repository

import (
	"context"
	"errors"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// ContentSource reads the static wellness documents: the Prakriti quiz,
// the yoga listing and the home remedies listing. Each is a JSON or YAML
// array; the format follows the file extension. Files are read on every
// call so edits show up without a restart.
type ContentSource struct {
	prakritiPath string
	yogaPath     string
	remediesPath string
}

// NewContentSource creates a ContentSource over the three document paths.
func NewContentSource(prakritiPath, yogaPath, remediesPath string) *ContentSource {
	return &ContentSource{prakritiPath: prakritiPath, yogaPath: yogaPath, remediesPath: remediesPath}
}

// PrakritiQuestions loads the Prakriti quiz. A missing file is an error.
func (s *ContentSource) PrakritiQuestions(ctx context.Context) ([]models.PrakritiQuestion, error) {
	questions := make([]models.PrakritiQuestion, 0)
	if err := loadList(ctx, s.prakritiPath, false, &questions); err != nil {
		return nil, eris.Wrap(err, "prakriti questions")
	}
	return questions, nil
}

// YogaPoses loads the yoga listing. A missing file yields an empty list.
func (s *ContentSource) YogaPoses(ctx context.Context) ([]models.YogaPose, error) {
	poses := make([]models.YogaPose, 0)
	if err := loadList(ctx, s.yogaPath, true, &poses); err != nil {
		return nil, eris.Wrap(err, "yoga poses")
	}
	return poses, nil
}

// Remedies loads the home remedies listing. A missing file yields an empty list.
func (s *ContentSource) Remedies(ctx context.Context) ([]models.Remedy, error) {
	remedies := make([]models.Remedy, 0)
	if err := loadList(ctx, s.remediesPath, true, &remedies); err != nil {
		return nil, eris.Wrap(err, "remedies")
	}
	return remedies, nil
}

func loadList(ctx context.Context, path string, optional bool, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "context cancelled")
	}
	if optional {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			zap.L().Warn("[ContentSource] Content file not found, serving an empty list", zap.String("path", path))
			return nil
		}
	}
	if err := decodeDocument(path, FormatFromPath(path), out); err != nil {
		return err
	}
	zap.L().Debug("[ContentSource] Loaded content", zap.String("path", path))
	return nil
}
