package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// Supported questionnaire source formats.
const (
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// QuestionSource loads the raw questionnaire, already grouped into sections.
type QuestionSource interface {
	Load(ctx context.Context) (models.SurveyMeta, []models.Section, error)
}

// NewQuestionSource picks a source for path. An empty format is inferred
// from the file extension; anything unrecognised is read as JSON.
func NewQuestionSource(path, format, sheet string) QuestionSource {
	if format == "" {
		format = FormatFromPath(path)
	}
	switch format {
	case FormatXLSX:
		return NewXLSXQuestionSource(path, sheet, DefaultFieldResolver())
	case FormatYAML:
		return NewDocumentQuestionSource(path, FormatYAML)
	default:
		return NewDocumentQuestionSource(path, FormatJSON)
	}
}

// FormatFromPath infers a source format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// XLSXQuestionSource reads a questionnaire master chart. The first row of
// the sheet is the header row; every following row is normalised through
// the field resolver.
type XLSXQuestionSource struct {
	path     string
	sheet    string
	resolver FieldResolver
}

// NewXLSXQuestionSource creates a spreadsheet source. An empty sheet name
// selects the first sheet.
func NewXLSXQuestionSource(path, sheet string, resolver FieldResolver) *XLSXQuestionSource {
	return &XLSXQuestionSource{path: path, sheet: sheet, resolver: resolver}
}

// Load implements QuestionSource.
func (s *XLSXQuestionSource) Load(ctx context.Context) (models.SurveyMeta, []models.Section, error) {
	zap.L().Info("[QuestionSource] Loading questions from spreadsheet", zap.String("path", s.path))

	rows, err := s.readRows(ctx)
	if err != nil {
		return models.SurveyMeta{}, nil, err
	}

	sections := s.resolver.NormalizeRows(rows)
	meta := models.SurveyMeta{
		Title: strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path)),
	}
	return meta, sections, nil
}

func (s *XLSXQuestionSource) readRows(ctx context.Context) ([]Row, error) {
	f, err := xlsx.OpenFile(s.path)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: open %s", s.path)
	}

	sheet, err := s.pickSheet(f)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	header := rowToStrings(sheet.Rows[0])
	rows := make([]Row, 0, len(sheet.Rows)-1)
	for _, r := range sheet.Rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "xlsx: context cancelled")
		}
		cells := rowToStrings(r)
		row := make(Row, len(header))
		blank := true
		for i, label := range header {
			if label == "" || i >= len(cells) {
				continue
			}
			row[label] = cells[i]
			if strings.TrimSpace(cells[i]) != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *XLSXQuestionSource) pickSheet(f *xlsx.File) (*xlsx.Sheet, error) {
	if s.sheet != "" {
		sheet, ok := f.Sheet[s.sheet]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", s.sheet)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

// DocumentQuestionSource reads a questionnaire document whose questions are
// already grouped into sections.
type DocumentQuestionSource struct {
	path   string
	format string
}

// NewDocumentQuestionSource creates a document source; format is FormatJSON
// or FormatYAML.
func NewDocumentQuestionSource(path, format string) *DocumentQuestionSource {
	return &DocumentQuestionSource{path: path, format: format}
}

// Load implements QuestionSource.
func (s *DocumentQuestionSource) Load(ctx context.Context) (models.SurveyMeta, []models.Section, error) {
	if err := ctx.Err(); err != nil {
		return models.SurveyMeta{}, nil, eris.Wrap(err, "questionnaire: context cancelled")
	}

	var doc models.QuestionnaireDocument
	if err := decodeDocument(s.path, s.format, &doc); err != nil {
		return models.SurveyMeta{}, nil, eris.Wrap(err, "questionnaire")
	}

	for i := range doc.Sections {
		for j := range doc.Sections[i].Questions {
			q := &doc.Sections[i].Questions[j]
			q.Type = NormalizeQuestionType(string(q.Type), len(q.Options) > 0)
		}
	}

	zap.L().Info("[QuestionSource] Loaded questionnaire document",
		zap.String("path", s.path),
		zap.String("title", doc.SurveyMeta.Title),
		zap.String("version", doc.SurveyMeta.Version),
		zap.Int("sections", len(doc.Sections)),
	)
	return doc.SurveyMeta, doc.Sections, nil
}

// decodeDocument reads a JSON or YAML file into out.
func decodeDocument(path, format string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return eris.Wrapf(err, "parse %s document %s", format, path)
	}
	return nil
}
