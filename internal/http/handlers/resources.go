package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyscout-backend/internal/catalog"
	"github.com/yungbote/studyscout-backend/internal/http/response"
	"github.com/yungbote/studyscout-backend/internal/platform/logger"
	"github.com/yungbote/studyscout-backend/internal/retrieval"
)

// ResourceFinder is the slice of the retrieval engine this handler needs.
type ResourceFinder interface {
	FindResources(ctx context.Context, q retrieval.Query) ([]catalog.ScoredResource, error)
	Subjects() []string
}

type ResourceHandler struct {
	log    *logger.Logger
	finder ResourceFinder
}

func NewResourceHandler(log *logger.Logger, finder ResourceFinder) *ResourceHandler {
	return &ResourceHandler{
		log:    log.With("handler", "ResourceHandler"),
		finder: finder,
	}
}

// GET /find_resources?subject=&topic=&subtopic=&limit=
func (h *ResourceHandler) FindResources(c *gin.Context) {
	subject := strings.TrimSpace(c.Query("subject"))
	topic := strings.TrimSpace(c.Query("topic"))
	subtopic := strings.TrimSpace(c.Query("subtopic"))

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit",
				fmt.Errorf("limit must be an integer in [1, %d]", retrieval.MaxLimit))
			return
		}
		limit = parsed
	}

	results, err := h.finder.FindResources(c.Request.Context(), retrieval.Query{
		Subject:  subject,
		Topic:    topic,
		Subtopic: subtopic,
		Limit:    limit,
	})
	if err != nil {
		h.respondFindError(c, err)
		return
	}

	if results == nil {
		results = []catalog.ScoredResource{}
	}
	response.RespondOK(c, gin.H{"resources": results})
}

// GET /subjects
func (h *ResourceHandler) ListSubjects(c *gin.Context) {
	response.RespondOK(c, gin.H{"subjects": h.finder.Subjects()})
}

func (h *ResourceHandler) respondFindError(c *gin.Context, err error) {
	var subjectErr *retrieval.InvalidSubjectError
	if errors.As(err, &subjectErr) {
		response.RespondErrorWithSubjects(c, http.StatusBadRequest, "invalid_subject", err, subjectErr.Valid)
		return
	}
	var topicErr *retrieval.InvalidTopicError
	if errors.As(err, &topicErr) {
		response.RespondError(c, http.StatusBadRequest, "invalid_topic", err)
		return
	}
	var limitErr *retrieval.InvalidLimitError
	if errors.As(err, &limitErr) {
		response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return
	}
	var embErr *retrieval.EmbeddingUnavailableError
	if errors.As(err, &embErr) {
		h.log.Error("Embedding generation failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "embedding_unavailable", embErr)
		return
	}
	var catErr *retrieval.CatalogUnavailableError
	if errors.As(err, &catErr) {
		h.log.Error("Catalog search failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "catalog_unavailable", catErr)
		return
	}
	h.log.Error("FindResources failed", "error", err)
	response.RespondError(c, http.StatusInternalServerError, "search_failed", err)
}
