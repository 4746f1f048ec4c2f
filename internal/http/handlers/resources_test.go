package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyscout-backend/internal/catalog"
	"github.com/yungbote/studyscout-backend/internal/platform/logger"
	"github.com/yungbote/studyscout-backend/internal/retrieval"
)

type stubFinder struct {
	calls    int
	lastQ    retrieval.Query
	results  []catalog.ScoredResource
	err      error
	subjects []string
}

func (s *stubFinder) FindResources(_ context.Context, q retrieval.Query) ([]catalog.ScoredResource, error) {
	s.calls++
	s.lastQ = q
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *stubFinder) Subjects() []string {
	return s.subjects
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func newTestRouter(t *testing.T, finder *stubFinder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewResourceHandler(testLogger(t), finder)
	r := gin.New()
	r.GET("/find_resources", h.FindResources)
	r.GET("/subjects", h.ListSubjects)
	return r
}

func doGet(t *testing.T, r *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v; raw=%s", err, w.Body.String())
	}
	return body
}

func errorField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("response has no error object: %v", body)
	}
	return e
}

func TestFindResourcesSuccess(t *testing.T) {
	finder := &stubFinder{results: []catalog.ScoredResource{
		{
			ID:             "66f0a1b2c3d4e5f6a7b8c9d0",
			ResourceName:   "The cell cycle",
			ResourceURL:    "https://example.org/cell-cycle",
			ResourceType:   catalog.ResourceTypeVideo,
			SubtopicName:   "Cell cycle",
			FoundationName: "Cell Biology",
			Score:          0.95,
		},
	}}
	r := newTestRouter(t, finder)

	w := doGet(t, r, "/find_resources?subject=Biology&topic=cell+cycle&subtopic=mitosis&limit=3")
	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", w.Code, w.Body.String())
	}

	want := retrieval.Query{Subject: "Biology", Topic: "cell cycle", Subtopic: "mitosis", Limit: 3}
	if finder.lastQ != want {
		t.Fatalf("query: want=%+v got=%+v", want, finder.lastQ)
	}

	body := decodeBody(t, w)
	resources, ok := body["resources"].([]any)
	if !ok || len(resources) != 1 {
		t.Fatalf("resources: got=%v", body["resources"])
	}
	first := resources[0].(map[string]any)
	if first["resource_name"] != "The cell cycle" {
		t.Fatalf("resource_name: got=%v", first["resource_name"])
	}
	if _, present := first["resource_embedding"]; present {
		t.Fatalf("embedding leaked into response: %v", first)
	}
}

func TestFindResourcesEmptyResultIsArray(t *testing.T) {
	finder := &stubFinder{results: nil}
	r := newTestRouter(t, finder)

	w := doGet(t, r, "/find_resources?subject=Biology&topic=cell+cycle")
	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"resources":[]`) {
		t.Fatalf("empty result must serialize as []: %s", w.Body.String())
	}
}

func TestFindResourcesNonIntegerLimit(t *testing.T) {
	finder := &stubFinder{}
	r := newTestRouter(t, finder)

	w := doGet(t, r, "/find_resources?subject=Biology&topic=cells&limit=five")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: want=400 got=%d", w.Code)
	}
	e := errorField(t, decodeBody(t, w))
	if e["code"] != "invalid_limit" {
		t.Fatalf("code: got=%v", e["code"])
	}
	if finder.calls != 0 {
		t.Fatalf("finder must not be called for an unparseable limit; calls=%d", finder.calls)
	}
}

func TestFindResourcesErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid_subject",
			err:        &retrieval.InvalidSubjectError{Subject: "Astrology", Valid: []string{"Biology", "Chemistry"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_subject",
		},
		{
			name:       "invalid_topic",
			err:        &retrieval.InvalidTopicError{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_topic",
		},
		{
			name:       "invalid_limit",
			err:        &retrieval.InvalidLimitError{Limit: 42},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_limit",
		},
		{
			name:       "embedding_unavailable",
			err:        &retrieval.EmbeddingUnavailableError{Cause: fmt.Errorf("upstream 503")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "embedding_unavailable",
		},
		{
			name:       "catalog_unavailable",
			err:        &retrieval.CatalogUnavailableError{Cause: fmt.Errorf("server selection timeout")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "catalog_unavailable",
		},
		{
			name:       "unexpected",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "search_failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			finder := &stubFinder{err: tc.err}
			r := newTestRouter(t, finder)

			w := doGet(t, r, "/find_resources?subject=Biology&topic=cells")
			if w.Code != tc.wantStatus {
				t.Fatalf("status: want=%d got=%d body=%s", tc.wantStatus, w.Code, w.Body.String())
			}
			e := errorField(t, decodeBody(t, w))
			if e["code"] != tc.wantCode {
				t.Fatalf("code: want=%q got=%v", tc.wantCode, e["code"])
			}
		})
	}
}

func TestFindResourcesInvalidSubjectListsValidSubjects(t *testing.T) {
	finder := &stubFinder{err: &retrieval.InvalidSubjectError{
		Subject: "Astrology",
		Valid:   []string{"Biology", "Chemistry"},
	}}
	r := newTestRouter(t, finder)

	w := doGet(t, r, "/find_resources?subject=Astrology&topic=stars")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: want=400 got=%d", w.Code)
	}
	e := errorField(t, decodeBody(t, w))
	valid, ok := e["valid_subjects"].([]any)
	if !ok {
		t.Fatalf("error must enumerate valid subjects: %v", e)
	}
	want := []any{"Biology", "Chemistry"}
	if !reflect.DeepEqual(valid, want) {
		t.Fatalf("valid_subjects: want=%v got=%v", want, valid)
	}
}

func TestListSubjects(t *testing.T) {
	finder := &stubFinder{subjects: []string{"Biochemistry", "Biology"}}
	r := newTestRouter(t, finder)

	w := doGet(t, r, "/subjects")
	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", w.Code)
	}
	body := decodeBody(t, w)
	subjects, ok := body["subjects"].([]any)
	if !ok || len(subjects) != 2 {
		t.Fatalf("subjects: got=%v", body["subjects"])
	}
	if subjects[0] != "Biochemistry" || subjects[1] != "Biology" {
		t.Fatalf("subjects order: got=%v", subjects)
	}
}
