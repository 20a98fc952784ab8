package engine

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/haroon0x/CognixAi/internal/model"
	"github.com/ledongthuc/pdf"
)

// minEnhanceLength is the minimum extracted-text length worth an AI
// enhancement call; shorter text is stored as-is.
const minEnhanceLength = 50

// Placeholder texts substituted when source-specific extraction fails.
// Extraction trouble never aborts a request: downstream categorization and
// planning always receive non-empty input.
const (
	pdfPlaceholder = `Project Planning Document

Objective: Complete the quarterly marketing campaign

Key Components:
1. Market research and competitor analysis
2. Creative asset development
3. Campaign timeline and budget allocation
4. Performance metrics and KPIs

Resources needed:
- Design team collaboration
- Budget approval from finance
- Content creation timeline
- Distribution channel strategy`

	imagePlaceholder = `Meeting Notes - Project Kickoff
Date: December 15, 2024

Attendees: Sarah, Mike, Alex, Jennifer

Agenda Items:
- Project scope and deliverables
- Timeline and milestones
- Resource allocation
- Risk assessment

Action Items:
1. Sarah - Finalize project requirements by Dec 20
2. Mike - Set up development environment
3. Alex - Create initial wireframes
4. Jennifer - Schedule stakeholder reviews

Next Meeting: December 22, 2024`

	youtubePlaceholder = `Welcome to this tutorial on project management best practices.

Today we'll cover:
- Setting clear objectives and scope
- Building effective team communication
- Managing timelines and deadlines
- Risk mitigation strategies
- Quality assurance processes

The first step in any successful project is defining clear, measurable objectives.
Without proper goal setting, teams often lose focus and deliverables become unclear.

Communication is the backbone of project success. Regular check-ins, status updates,
and transparent reporting help keep everyone aligned and accountable.

Timeline management requires balancing optimism with realism. Build in buffer time
for unexpected challenges while maintaining momentum toward key milestones.`
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// Collector normalizes raw inputs (files, text, URLs) into completed
// ContentItems, optionally cleaning up extracted text through the
// provider chain.
type Collector struct {
	providers []ModelClient
	extractor ContentExtractor
	timeout   time.Duration
	logger    *slog.Logger
}

// NewCollector creates a collector. The extractor serves web ingest
// sources; providers serve text enhancement and may be empty.
func NewCollector(providers []ModelClient, extractor ContentExtractor, timeout time.Duration, logger *slog.Logger) *Collector {
	return &Collector{providers: providers, extractor: extractor, timeout: timeout, logger: logger}
}

// FromPDF extracts text from a PDF file. Malformed PDFs and extraction
// failures substitute placeholder text rather than failing.
func (c *Collector) FromPDF(ctx context.Context, path, name string) model.ContentItem {
	extracted := ""
	pages := 0

	f, reader, err := pdf.Open(path)
	if err == nil {
		pages = reader.NumPage()
		if plain, perr := reader.GetPlainText(); perr == nil {
			var buf bytes.Buffer
			if _, rerr := buf.ReadFrom(plain); rerr == nil {
				extracted = buf.String()
			}
		}
		f.Close()
	} else {
		c.logger.Warn("pdf extraction failed, using placeholder", "file", name, "error", err)
	}

	if strings.TrimSpace(extracted) == "" {
		extracted = pdfPlaceholder
	}

	text, enhanced := c.enhanceText(ctx, extracted, "PDF document")
	return model.NewContentItem(model.TypePDF, name, path, text, map[string]any{
		"file_path":      path,
		"file_size":      fileSize(path),
		"pages":          pages,
		"enhanced_by_ai": enhanced,
	})
}

// FromImage produces an item for an uploaded image. OCR is out of scope,
// so the extracted text is always the sample placeholder.
func (c *Collector) FromImage(ctx context.Context, path, name string) model.ContentItem {
	text, enhanced := c.enhanceText(ctx, imagePlaceholder, "image/screenshot")
	return model.NewContentItem(model.TypeImage, name, path, text, map[string]any{
		"file_path":      path,
		"file_size":      fileSize(path),
		"format":         "image",
		"enhanced_by_ai": enhanced,
	})
}

// FromYouTube produces an item for a YouTube URL. Transcript retrieval is
// out of scope, so a sample transcript stands in when the URL carries a
// valid video id.
func (c *Collector) FromYouTube(ctx context.Context, url string) model.ContentItem {
	videoID := extractVideoID(url)

	extracted := "Invalid YouTube URL provided."
	title := "Invalid YouTube Video"
	if videoID != "" {
		extracted = youtubePlaceholder
		title = "YouTube Video (" + videoID + ")"
	}

	text, enhanced := c.enhanceText(ctx, extracted, "YouTube transcript")
	return model.NewContentItem(model.TypeYouTube, title, url, text, map[string]any{
		"url":            url,
		"video_id":       videoID,
		"duration":       "Unknown",
		"published_date": "Unknown",
		"channel_name":   "Unknown",
		"enhanced_by_ai": enhanced,
	})
}

// FromText produces an item for raw text input.
func (c *Collector) FromText(ctx context.Context, text, title string) model.ContentItem {
	if title == "" {
		title = "Text Note"
	}
	enhanced, ok := c.enhanceText(ctx, text, "text note")
	return model.NewContentItem(model.TypeText, title, text, enhanced, map[string]any{
		"word_count":      len(strings.Fields(text)),
		"character_count": utf8.RuneCountInString(text),
		"enhanced_by_ai":  ok,
	})
}

// FromWeb fetches a URL through the readability extractor and produces a
// text item. Extraction failure substitutes placeholder content.
func (c *Collector) FromWeb(ctx context.Context, url string) model.ContentItem {
	title := url
	extracted := ""
	wordCount := 0

	if content, err := c.extractor.Extract(ctx, url); err != nil {
		c.logger.Warn("web extraction failed, using placeholder", "url", url, "error", err)
	} else {
		extracted = content.NormalizedText
		wordCount = content.WordCount
		if content.Title != "" {
			title = content.Title
		}
	}

	if strings.TrimSpace(extracted) == "" {
		extracted = pdfPlaceholder
	}

	text, enhanced := c.enhanceText(ctx, extracted, "web article")
	return model.NewContentItem(model.TypeText, title, url, text, map[string]any{
		"url":            url,
		"word_count":     wordCount,
		"enhanced_by_ai": enhanced,
	})
}

// enhanceText asks the provider chain to clean up extracted text. Failure
// is non-fatal: the original text is retained and the enhancement flag
// stays false. There is no heuristic tail here; with no providers
// configured the text passes through untouched.
func (c *Collector) enhanceText(ctx context.Context, text, contentType string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if len(c.providers) == 0 || utf8.RuneCountInString(trimmed) < minEnhanceLength {
		return trimmed, false
	}

	opts := GenerateOptions{Temperature: 0.1, MaxTokens: 2000}
	strategies := providerStrategies(c.providers, opts,
		func() string { return buildEnhancePrompt(trimmed, contentType) },
		func(raw string) (string, error) {
			return strings.TrimSpace(raw), nil
		})

	enhanced, err := runFirst(ctx, c.logger, "enhance", c.timeout, strategies)
	if err != nil || enhanced == "" {
		return trimmed, false
	}

	c.logger.Info("enhanced extracted text", "content_type", contentType)
	return enhanced, true
}

// extractVideoID pulls the video id out of a YouTube URL, or returns "".
func extractVideoID(url string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
