package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/studyscout-backend/internal/catalog"
	"github.com/yungbote/studyscout-backend/internal/platform/logger"
	"github.com/yungbote/studyscout-backend/internal/taxonomy"
)

const (
	// DefaultLimit is applied when a query leaves Limit at zero.
	DefaultLimit = 5
	// MaxLimit bounds how many results a single query may request.
	MaxLimit = 10
	// DefaultNumCandidates is the similarity-stage oversampling size. The
	// superset must be larger than any limit because the category filter can
	// discard most of the top-K when a subject's foundations are a small
	// slice of the corpus.
	DefaultNumCandidates = 100
)

// Embedder turns query text into a vector in the same embedding space the
// catalog was built with.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// CatalogStore retrieves a candidate superset by vector similarity alone,
// ordered highest score first. No category filter is pushed into the
// similarity stage; the engine filters afterward.
type CatalogStore interface {
	SearchByVector(ctx context.Context, q []float32, numCandidates int) ([]catalog.Candidate, error)
}

// Query is one retrieval request. Subtopic narrows intent without a separate
// search field; Limit zero means DefaultLimit.
type Query struct {
	Subject  string
	Topic    string
	Subtopic string
	Limit    int
}

// Engine orchestrates the query path: validate subject, build search text,
// embed, similarity-search, filter by foundation, truncate, project. It holds
// no mutable state, so one engine serves any number of concurrent callers.
type Engine struct {
	log           *logger.Logger
	table         *taxonomy.Table
	embedder      Embedder
	store         CatalogStore
	numCandidates int
}

type Option func(*Engine)

// WithNumCandidates overrides the similarity-stage oversampling size.
func WithNumCandidates(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.numCandidates = n
		}
	}
}

func NewEngine(log *logger.Logger, table *taxonomy.Table, embedder Embedder, store CatalogStore, opts ...Option) (*Engine, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if table == nil {
		return nil, fmt.Errorf("taxonomy table required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	e := &Engine{
		log:           log.With("service", "RetrievalEngine"),
		table:         table,
		embedder:      embedder,
		store:         store,
		numCandidates: DefaultNumCandidates,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Subjects exposes the taxonomy's subject list for the service boundary.
func (e *Engine) Subjects() []string {
	return e.table.Subjects()
}

// SearchText composes the text that gets embedded for a query.
func SearchText(topic, subtopic string) string {
	topic = strings.TrimSpace(topic)
	subtopic = strings.TrimSpace(subtopic)
	if subtopic == "" {
		return topic
	}
	return topic + " " + subtopic
}

// FindResources returns up to q.Limit resources relevant to the query,
// restricted to the subject's foundations and ordered by descending
// similarity score. Zero matches is an empty result, not an error; any
// pipeline failure aborts the whole call with a typed error and no partial
// results.
func (e *Engine) FindResources(ctx context.Context, q Query) ([]catalog.ScoredResource, error) {
	foundations, ok := e.table.FoundationsFor(q.Subject)
	if !ok {
		return nil, &InvalidSubjectError{Subject: q.Subject, Valid: e.table.Subjects()}
	}

	if strings.TrimSpace(q.Topic) == "" {
		return nil, &InvalidTopicError{}
	}

	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, &InvalidLimitError{Limit: limit}
	}

	text := SearchText(q.Topic, q.Subtopic)

	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, &EmbeddingUnavailableError{Cause: err}
	}
	if len(vector) == 0 {
		return nil, &EmbeddingUnavailableError{Cause: fmt.Errorf("embedder returned an empty vector")}
	}

	numCandidates := e.numCandidates
	if numCandidates < limit {
		numCandidates = limit
	}

	candidates, err := e.store.SearchByVector(ctx, vector, numCandidates)
	if err != nil {
		return nil, &CatalogUnavailableError{Cause: err}
	}

	allowed := make(map[string]struct{}, len(foundations))
	for _, name := range foundations {
		allowed[name] = struct{}{}
	}

	// The store returns candidates in descending-score order; keep that
	// order rather than recomputing similarity.
	results := make([]catalog.ScoredResource, 0, limit)
	for _, c := range candidates {
		if _, ok := allowed[c.FoundationName]; !ok {
			continue
		}
		results = append(results, c.Project())
		if len(results) == limit {
			break
		}
	}

	e.log.Debug("Retrieval query completed",
		"subject", q.Subject,
		"search_text", text,
		"candidates", len(candidates),
		"results", len(results),
		"limit", limit,
		"num_candidates", numCandidates,
	)
	return results, nil
}
