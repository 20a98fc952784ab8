package model

import (
	"time"

	"github.com/google/uuid"
)

// Content type constants
const (
	TypePDF     = "pdf"
	TypeImage   = "image"
	TypeYouTube = "youtube"
	TypeText    = "text"
)

// StatusCompleted is the only persisted content status. Failed extractions
// substitute placeholder text and still complete; hard failures abort the
// request before anything is stored.
const StatusCompleted = "completed"

// idPrefixes maps a content type to its id prefix.
var idPrefixes = map[string]string{
	TypePDF:     "pdf-",
	TypeImage:   "img-",
	TypeYouTube: "yt-",
	TypeText:    "text-",
}

// ContentItem represents one unit of ingested material.
type ContentItem struct {
	ID             string         `json:"id"`
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	ExtractedText  string         `json:"extracted_text"`
	Metadata       map[string]any `json:"metadata"`
	Timestamp      string         `json:"timestamp"`
	Status         string         `json:"status"`
	Categories     []string       `json:"categories"`
	RelevanceScore *float64       `json:"relevance_score,omitempty"`
}

// Relationship links two content items whose similarity exceeds the
// reporting threshold. It is derived per request and never stored.
type Relationship struct {
	Item1        string   `json:"item1"`
	Item2        string   `json:"item2"`
	Similarity   float64  `json:"similarity"`
	CommonTopics []string `json:"common_topics"`
}

// NewContentItem creates a completed ContentItem with a type-prefixed id.
func NewContentItem(contentType, title, content, extractedText string, metadata map[string]any) ContentItem {
	prefix, ok := idPrefixes[contentType]
	if !ok {
		prefix = contentType + "-"
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return ContentItem{
		ID:            prefix + uuid.New().String(),
		Type:          contentType,
		Title:         title,
		Content:       content,
		ExtractedText: extractedText,
		Metadata:      metadata,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Status:        StatusCompleted,
		Categories:    []string{},
	}
}
