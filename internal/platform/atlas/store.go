package atlas

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yungbote/studyscout-backend/internal/catalog"
	"github.com/yungbote/studyscout-backend/internal/platform/logger"
)

// Store is the catalog store contract consumed by the retrieval engine:
// approximate nearest-neighbor retrieval by similarity alone, plus a
// connectivity probe for the health endpoint. Category filtering happens
// above this layer.
type Store interface {
	SearchByVector(ctx context.Context, q []float32, numCandidates int) ([]catalog.Candidate, error)
	Ping(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

type store struct {
	log    *logger.Logger
	cfg    Config
	client *mongo.Client
	coll   *mongo.Collection
}

func NewStore(ctx context.Context, log *logger.Logger, cfg Config) (Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, opErr("connect", OperationErrorUnreachable, "", err)
	}

	s := &store{
		log:    log.With("service", "AtlasCatalogStore"),
		cfg:    cfg,
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}

	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Info("Atlas catalog store connected",
		"database", cfg.Database,
		"collection", cfg.Collection,
		"vector_index", cfg.VectorIndex,
		"vector_dim", cfg.VectorDim,
	)
	return s, nil
}

// SearchByVector runs a $vectorSearch aggregation and returns candidates in
// the store's native order, highest similarity first. The embedding field is
// excluded from the projection; the score comes from the search metadata.
func (s *store) SearchByVector(ctx context.Context, q []float32, numCandidates int) ([]catalog.Candidate, error) {
	const op = "vector_search"
	if len(q) == 0 {
		return nil, opErr(op, OperationErrorValidation, "query vector is empty", nil)
	}
	if s.cfg.VectorDim > 0 && len(q) != s.cfg.VectorDim {
		return nil, opErr(
			op,
			OperationErrorValidation,
			fmt.Sprintf("query vector dimension mismatch: expected=%d got=%d", s.cfg.VectorDim, len(q)),
			nil,
		)
	}
	if numCandidates <= 0 {
		return nil, opErr(op, OperationErrorValidation, "numCandidates must be positive", nil)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: s.cfg.VectorIndex},
			{Key: "path", Value: "resource_embedding"},
			{Key: "queryVector", Value: q},
			{Key: "numCandidates", Value: numCandidates},
			{Key: "limit", Value: numCandidates},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "resource_name", Value: 1},
			{Key: "resource_url", Value: 1},
			{Key: "resource_type", Value: 1},
			{Key: "subtopic_name", Value: 1},
			{Key: "foundation_name", Value: 1},
			{Key: "estimated_time", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, opErr(op, OperationErrorQueryFailed, "", err)
	}
	defer cursor.Close(ctx)

	var out []catalog.Candidate
	if err := cursor.All(ctx, &out); err != nil {
		return nil, opErr(op, OperationErrorDecode, "", err)
	}
	return out, nil
}

func (s *store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return opErr("ping", OperationErrorUnreachable, "", err)
	}
	return nil
}

func (s *store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
