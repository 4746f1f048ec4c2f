package atlas

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/studyscout-backend/internal/platform/logger"
)

func testStore(t *testing.T, dim int) *store {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return &store{
		log: log,
		cfg: Config{
			URI:         "mongodb://localhost:27017",
			Database:    "mcat_study_tool",
			Collection:  "khan_resources",
			VectorIndex: "vector_index",
			VectorDim:   dim,
		},
	}
}

func TestSearchByVectorValidation(t *testing.T) {
	cases := []struct {
		name          string
		dim           int
		vector        []float32
		numCandidates int
	}{
		{name: "empty_vector", dim: 3, vector: nil, numCandidates: 100},
		{name: "dimension_mismatch", dim: 3, vector: []float32{1, 2}, numCandidates: 100},
		{name: "zero_num_candidates", dim: 2, vector: []float32{1, 2}, numCandidates: 0},
		{name: "negative_num_candidates", dim: 2, vector: []float32{1, 2}, numCandidates: -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testStore(t, tc.dim)

			_, err := s.SearchByVector(context.Background(), tc.vector, tc.numCandidates)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			var oe *OperationError
			if !errors.As(err, &oe) {
				t.Fatalf("expected *OperationError, got %T", err)
			}
			if oe.Code != OperationErrorValidation {
				t.Fatalf("code: want=%q got=%q", OperationErrorValidation, oe.Code)
			}
			if oe.Operation != "vector_search" {
				t.Fatalf("operation: got=%q", oe.Operation)
			}
		})
	}
}
