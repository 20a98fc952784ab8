package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haroon0x/CognixAi/internal/model"
)

// fakeExtractor is a scriptable ContentExtractor.
type fakeExtractor struct {
	content *ExtractedContent
	err     error
}

func (f *fakeExtractor) Extract(context.Context, string) (*ExtractedContent, error) {
	return f.content, f.err
}

func newTestCollector(extractor ContentExtractor, providers ...ModelClient) *Collector {
	return NewCollector(providers, extractor, time.Second, testLogger)
}

func TestFromText(t *testing.T) {
	c := newTestCollector(nil)
	item := c.FromText(context.Background(), "Project deadline is Friday", "Note")

	assert.Equal(t, model.TypeText, item.Type)
	assert.Equal(t, "Note", item.Title)
	assert.Equal(t, "Project deadline is Friday", item.ExtractedText)
	assert.Equal(t, model.StatusCompleted, item.Status)
	assert.Contains(t, item.ID, "text-")
	assert.Equal(t, 4, item.Metadata["word_count"])
	assert.Equal(t, 26, item.Metadata["character_count"])
	assert.Equal(t, false, item.Metadata["enhanced_by_ai"])
}

func TestFromText_DefaultTitle(t *testing.T) {
	c := newTestCollector(nil)
	item := c.FromText(context.Background(), "hello", "")
	assert.Equal(t, "Text Note", item.Title)
}

func TestFromText_ShortTextSkipsEnhancement(t *testing.T) {
	provider := &fakeModel{name: "fake", response: "should not be used"}
	c := newTestCollector(nil, provider)

	item := c.FromText(context.Background(), "too short to enhance", "Note")
	assert.Equal(t, "too short to enhance", item.ExtractedText)
	assert.Equal(t, false, item.Metadata["enhanced_by_ai"])
	assert.Zero(t, provider.calls)
}

func TestFromText_Enhancement(t *testing.T) {
	provider := &fakeModel{name: "fake", response: "cleaned up version of the note"}
	c := newTestCollector(nil, provider)

	long := "This note is certainly long enough to qualify for an enhancement pass through the provider chain."
	item := c.FromText(context.Background(), long, "Note")
	assert.Equal(t, "cleaned up version of the note", item.ExtractedText)
	assert.Equal(t, true, item.Metadata["enhanced_by_ai"])
}

func TestFromText_EnhancementFailureKeepsOriginal(t *testing.T) {
	provider := &fakeModel{name: "fake", err: errors.New("down")}
	c := newTestCollector(nil, provider)

	long := "This note is certainly long enough to qualify for an enhancement pass through the provider chain."
	item := c.FromText(context.Background(), long, "Note")
	assert.Equal(t, long, item.ExtractedText)
	assert.Equal(t, false, item.Metadata["enhanced_by_ai"])
}

func TestFromPDF_MissingFileUsesPlaceholder(t *testing.T) {
	c := newTestCollector(nil)
	item := c.FromPDF(context.Background(), "/nonexistent/file.pdf", "file.pdf")

	assert.Equal(t, model.TypePDF, item.Type)
	assert.Equal(t, "file.pdf", item.Title)
	assert.Contains(t, item.ID, "pdf-")
	assert.Contains(t, item.ExtractedText, "Project Planning Document")
	assert.Equal(t, int64(0), item.Metadata["file_size"])
	assert.Equal(t, 0, item.Metadata["pages"])
}

func TestFromImage(t *testing.T) {
	c := newTestCollector(nil)
	item := c.FromImage(context.Background(), "/tmp/shot.png", "shot.png")

	assert.Equal(t, model.TypeImage, item.Type)
	assert.Contains(t, item.ID, "img-")
	assert.Contains(t, item.ExtractedText, "Meeting Notes - Project Kickoff")
	assert.Equal(t, "image", item.Metadata["format"])
}

func TestFromYouTube_ValidURL(t *testing.T) {
	c := newTestCollector(nil)
	item := c.FromYouTube(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	assert.Equal(t, model.TypeYouTube, item.Type)
	assert.Equal(t, "YouTube Video (dQw4w9WgXcQ)", item.Title)
	assert.Contains(t, item.ID, "yt-")
	assert.Equal(t, "dQw4w9WgXcQ", item.Metadata["video_id"])
	assert.Contains(t, item.ExtractedText, "project management best practices")
}

func TestFromYouTube_InvalidURL(t *testing.T) {
	c := newTestCollector(nil)
	item := c.FromYouTube(context.Background(), "https://example.com/video")

	assert.Equal(t, "Invalid YouTube Video", item.Title)
	assert.Equal(t, "Invalid YouTube URL provided.", item.ExtractedText)
	assert.Equal(t, "", item.Metadata["video_id"])
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc123", "abc123"},
		{"https://youtu.be/abc123", "abc123"},
		{"https://www.youtube.com/embed/abc123", "abc123"},
		{"https://www.youtube.com/watch?list=x&v=abc123", "abc123"},
		{"https://www.youtube.com/watch?v=abc123&t=30s", "abc123"},
		{"https://vimeo.com/12345", ""},
		{"not a url", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractVideoID(tt.url), "url=%s", tt.url)
	}
}

func TestFromWeb(t *testing.T) {
	extractor := &fakeExtractor{content: &ExtractedContent{
		Title:          "An Article",
		NormalizedText: "readable article body",
		WordCount:      3,
	}}
	c := newTestCollector(extractor)

	item := c.FromWeb(context.Background(), "https://example.com/post")
	assert.Equal(t, model.TypeText, item.Type)
	assert.Equal(t, "An Article", item.Title)
	assert.Equal(t, "readable article body", item.ExtractedText)
	assert.Equal(t, "https://example.com/post", item.Metadata["url"])
	assert.Equal(t, 3, item.Metadata["word_count"])
}

func TestFromWeb_ExtractionFailureUsesPlaceholder(t *testing.T) {
	c := newTestCollector(&fakeExtractor{err: errors.New("HTTP 403")})

	item := c.FromWeb(context.Background(), "https://example.com/blocked")
	require.Equal(t, "https://example.com/blocked", item.Title)
	assert.Contains(t, item.ExtractedText, "Project Planning Document")
}

func TestNormalizeText(t *testing.T) {
	got := normalizeText("  a \t b\n\n\n\nc  ")
	assert.Equal(t, "a b\n\nc", got)
}
