package services

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// Catalog is an immutable, flattened question list with lookup by id.
// It is safe for concurrent readers.
type Catalog struct {
	meta      models.SurveyMeta
	questions []models.Question
	byID      map[string]*models.Question
}

// NewCatalog flattens sections into a catalog. Every question is tagged with
// its section title and id. A question id seen twice keeps its first
// definition.
func NewCatalog(meta models.SurveyMeta, sections []models.Section) *Catalog {
	c := &Catalog{
		meta:      meta,
		questions: make([]models.Question, 0),
		byID:      make(map[string]*models.Question),
	}

	seen := make(map[string]struct{})
	for _, section := range sections {
		for _, q := range section.Questions {
			if q.ID == "" {
				continue
			}
			if _, dup := seen[q.ID]; dup {
				zap.L().Warn("[Catalog] Duplicate question id, keeping first definition",
					zap.String("question_id", q.ID),
					zap.String("section", section.Title),
				)
				continue
			}
			seen[q.ID] = struct{}{}
			q.Section = section.Title
			q.SectionID = section.SectionID
			q.Options = append([]models.Option(nil), q.Options...)
			c.questions = append(c.questions, q)
		}
	}

	for i := range c.questions {
		c.byID[c.questions[i].ID] = &c.questions[i]
	}
	return c
}

// EmptyCatalog returns a catalog with no questions.
func EmptyCatalog() *Catalog {
	return NewCatalog(models.SurveyMeta{}, nil)
}

// ListAll returns a deep copy of every question in source order.
func (c *Catalog) ListAll() []models.Question {
	out := make([]models.Question, len(c.questions))
	for i, q := range c.questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// ByID looks up a copy of a question. Unknown ids report false.
func (c *Catalog) ByID(id string) (models.Question, bool) {
	q, ok := c.byID[id]
	if !ok {
		return models.Question{}, false
	}
	return cloneQuestion(*q), true
}

func cloneQuestion(q models.Question) models.Question {
	q.Options = append([]models.Option(nil), q.Options...)
	return q
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Meta returns the questionnaire title and version, when the source has them.
func (c *Catalog) Meta() models.SurveyMeta {
	return c.meta
}

// SectionSource produces the raw sections a catalog is built from.
type SectionSource interface {
	Load(ctx context.Context) (models.SurveyMeta, []models.Section, error)
}

// CatalogLoader builds the catalog from its source once and hands the same
// handle to every caller until Invalidate is called.
type CatalogLoader struct {
	source SectionSource

	mu         sync.RWMutex
	catalog    *Catalog
	generation uint64 // bumped by Invalidate; a build only memoises within its own generation
	group      singleflight.Group
}

// NewCatalogLoader creates a loader for source. Nothing is read until the
// first call to Catalog.
func NewCatalogLoader(source SectionSource) *CatalogLoader {
	return &CatalogLoader{source: source}
}

// Catalog returns the memoised catalog, building it on first use. Concurrent
// first callers share one build. A failed build is logged and yields an
// empty catalog that is not memoised, so the next call tries again.
func (l *CatalogLoader) Catalog(ctx context.Context) *Catalog {
	l.mu.RLock()
	c, gen := l.catalog, l.generation
	l.mu.RUnlock()
	if c != nil {
		return c
	}

	key := "catalog:" + strconv.FormatUint(gen, 10)
	v, _, _ := l.group.Do(key, func() (interface{}, error) {
		l.mu.RLock()
		cached, current := l.catalog, l.generation
		l.mu.RUnlock()
		if cached != nil && current == gen {
			return cached, nil
		}

		meta, sections, err := l.source.Load(ctx)
		if err != nil {
			zap.L().Error("[CatalogLoader] Failed to load questionnaire; serving an empty catalog", zap.Error(err))
			return EmptyCatalog(), nil
		}

		built := NewCatalog(meta, sections)
		l.mu.Lock()
		stale := l.generation != gen
		if !stale {
			l.catalog = built
		}
		l.mu.Unlock()
		if stale {
			zap.L().Info("[CatalogLoader] Discarding questionnaire built before invalidation", zap.Int("questions", built.Len()))
			return built, nil
		}
		zap.L().Info("[CatalogLoader] Questionnaire loaded",
			zap.String("title", meta.Title),
			zap.String("version", meta.Version),
			zap.Int("questions", built.Len()),
		)
		return built, nil
	})
	return v.(*Catalog)
}

// Invalidate drops the memoised catalog so the next call rebuilds it. A build
// already in flight is not memoised.
func (l *CatalogLoader) Invalidate() {
	l.mu.Lock()
	l.catalog = nil
	l.generation++
	gen := l.generation
	l.mu.Unlock()
	zap.L().Info("[CatalogLoader] Catalog invalidated", zap.Uint64("generation", gen))
}
