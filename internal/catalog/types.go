package catalog

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResourceType classifies a catalog entry by how it is consumed.
type ResourceType string

const (
	ResourceTypeArticle ResourceType = "Article"
	ResourceTypeVideo   ResourceType = "Video"
	ResourceTypeUnknown ResourceType = "Unknown"
)

// ParseResourceType normalizes the free-form type strings produced by the
// ingestion pipeline. Anything unrecognized collapses to Unknown.
func ParseResourceType(s string) ResourceType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "article":
		return ResourceTypeArticle
	case "video":
		return ResourceTypeVideo
	default:
		return ResourceTypeUnknown
	}
}

// ResourceRecord is one catalog entry as persisted by the offline ingestion
// pipeline. Records are immutable at query time; the service only reads them.
type ResourceRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FoundationName string             `bson:"foundation_name" json:"foundation_name"`
	SubtopicName   string             `bson:"subtopic_name" json:"subtopic_name"`
	ResourceName   string             `bson:"resource_name" json:"resource_name"`
	ResourceURL    string             `bson:"resource_url" json:"resource_url"`
	ResourceType   ResourceType       `bson:"resource_type" json:"resource_type"`
	EstimatedTime  string             `bson:"estimated_time,omitempty" json:"estimated_time,omitempty"`

	// Never serialized to JSON; only the ingestion pipeline writes it.
	Embedding []float32 `bson:"resource_embedding,omitempty" json:"-"`
}

// DescriptiveText is the exact text the ingestion pipeline embeds for a
// record. Kept here so any future write path and the query path can never
// drift on the format.
func (r ResourceRecord) DescriptiveText() string {
	return fmt.Sprintf("%s: %s - %s", r.FoundationName, r.SubtopicName, r.ResourceName)
}

// Candidate is a record paired with the similarity score the store's
// nearest-neighbor search assigned it relative to a query vector.
type Candidate struct {
	ResourceRecord `bson:",inline"`
	Score          float64 `bson:"score"`
}

// ScoredResource is the caller-facing projection of a candidate. It carries
// no embedding field by construction.
type ScoredResource struct {
	ID             string       `json:"_id"`
	ResourceName   string       `json:"resource_name"`
	ResourceURL    string       `json:"resource_url"`
	ResourceType   ResourceType `json:"resource_type"`
	SubtopicName   string       `json:"subtopic_name"`
	FoundationName string       `json:"foundation_name"`
	EstimatedTime  string       `json:"estimated_time,omitempty"`
	Score          float64      `json:"score"`
}

// Project shapes a candidate into its caller-facing form.
func (c Candidate) Project() ScoredResource {
	id := ""
	if !c.ID.IsZero() {
		id = c.ID.Hex()
	}
	return ScoredResource{
		ID:             id,
		ResourceName:   c.ResourceName,
		ResourceURL:    c.ResourceURL,
		ResourceType:   c.ResourceType,
		SubtopicName:   c.SubtopicName,
		FoundationName: c.FoundationName,
		EstimatedTime:  c.EstimatedTime,
		Score:          c.Score,
	}
}
