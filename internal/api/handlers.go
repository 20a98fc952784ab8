package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haroon0x/CognixAi/internal/model"
	"github.com/haroon0x/CognixAi/internal/store"
)

// ---------------------------------------------------------------------------
// GET /
// ---------------------------------------------------------------------------

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "CognixAi backend API is running",
		"version": "1.0.0",
		"agents": map[string]string{
			"collector":      "active",
			"context_mapper": "active",
			"planner":        "active",
		},
		"endpoints": map[string]string{
			"upload_files":   "/api/upload/files",
			"upload_text":    "/api/upload/text",
			"upload_youtube": "/api/upload/youtube",
			"content":        "/api/content",
			"generate_plan":  "/api/generate-plan",
			"action_plans":   "/api/action-plans",
		},
	})
}

// ---------------------------------------------------------------------------
// GET /health
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"agents_active": 3,
		"content_items": s.content.Len(),
		"action_plans":  s.plans.Len(),
	})
}

// ---------------------------------------------------------------------------
// POST /api/upload/files
// ---------------------------------------------------------------------------

func (s *Server) handleUploadFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRequestBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return
	}

	results := make([]model.ContentItem, 0, len(files))
	for _, header := range files {
		item, err := s.processUpload(r, header)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "error processing "+header.Filename+": "+err.Error())
			return
		}
		item = s.mapper.Enrich(r.Context(), item)
		s.content.Put(item)
		results = append(results, item)
	}

	s.logger.Info("processed uploaded files", "count", len(results))
	writeJSON(w, http.StatusOK, results)
}

// processUpload saves one multipart file to a temp path and routes it to
// the collector by content type. Only infrastructure errors (temp file
// I/O) are returned; extraction trouble is absorbed by the collector.
func (s *Server) processUpload(r *http.Request, header *multipart.FileHeader) (model.ContentItem, error) {
	file, err := header.Open()
	if err != nil {
		return model.ContentItem{}, err
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "upload-*_"+filepath.Base(header.Filename))
	if err != nil {
		return model.ContentItem{}, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return model.ContentItem{}, err
	}
	if err := tmp.Close(); err != nil {
		return model.ContentItem{}, err
	}

	contentType := header.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch {
	case contentType == "application/pdf" || ext == ".pdf":
		return s.collector.FromPDF(r.Context(), tmpPath, header.Filename), nil
	case strings.HasPrefix(contentType, "image/"):
		return s.collector.FromImage(r.Context(), tmpPath, header.Filename), nil
	default:
		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return model.ContentItem{}, err
		}
		return s.collector.FromText(r.Context(), string(data), header.Filename), nil
	}
}

// ---------------------------------------------------------------------------
// POST /api/upload/text
// ---------------------------------------------------------------------------

type textUploadRequest struct {
	Text  string `json:"text"`
	Title string `json:"title"`
}

func (s *Server) handleUploadText(w http.ResponseWriter, r *http.Request) {
	var req textUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	item := s.collector.FromText(r.Context(), req.Text, req.Title)
	item = s.mapper.Enrich(r.Context(), item)
	s.content.Put(item)

	writeJSON(w, http.StatusOK, item)
}

// ---------------------------------------------------------------------------
// POST /api/upload/youtube
// ---------------------------------------------------------------------------

type youtubeUploadRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleUploadYouTube(w http.ResponseWriter, r *http.Request) {
	var req youtubeUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	item := s.collector.FromYouTube(r.Context(), req.URL)
	item = s.mapper.Enrich(r.Context(), item)
	s.content.Put(item)

	writeJSON(w, http.StatusOK, item)
}

// ---------------------------------------------------------------------------
// GET /api/content
// ---------------------------------------------------------------------------

func (s *Server) handleGetContent(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.content.List())
}

// ---------------------------------------------------------------------------
// POST /api/generate-plan
// ---------------------------------------------------------------------------

type generatePlanRequest struct {
	Goals      []string `json:"goals"`
	ContentIDs []string `json:"content_ids"`
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req generatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	items := s.resolveContent(req.ContentIDs)
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "no valid content items found")
		return
	}

	plan := s.planner.GeneratePlan(r.Context(), items, req.Goals)
	s.plans.Put(plan)

	writeJSON(w, http.StatusOK, plan)
}

// ---------------------------------------------------------------------------
// GET /api/action-plans
// ---------------------------------------------------------------------------

func (s *Server) handleGetActionPlans(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.plans.List())
}

// ---------------------------------------------------------------------------
// PUT /api/action-plans/{planID}/steps/{stepID}/toggle
// ---------------------------------------------------------------------------

func (s *Server) handleToggleStep(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("planID")
	stepID := r.PathValue("stepID")

	completed, err := s.plans.ToggleStep(planID, stepID)
	if errors.Is(err, store.ErrStepNotFound) {
		writeError(w, http.StatusNotFound, "step not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusNotFound, "action plan not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "completed": completed})
}

// ---------------------------------------------------------------------------
// POST /api/ingest
// ---------------------------------------------------------------------------

type ingestRequest struct {
	Sources   []string          `json:"sources"`
	DateRange map[string]string `json:"date_range"`
	Filters   map[string]any    `json:"filters"`
	UserID    string            `json:"user_id"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.AgentResponse{Success: false, Error: "invalid JSON body"})
		return
	}

	items := []model.ContentItem{}
	events := []map[string]any{}
	for _, source := range req.Sources {
		switch {
		case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
			item := s.collector.FromWeb(r.Context(), source)
			item = s.mapper.Enrich(r.Context(), item)
			s.content.Put(item)
			items = append(items, item)
		case source == "calendar":
			// Calendar sync is not connected; the frontend contract
			// expects an events list either way.
		default:
			s.logger.Warn("ignoring unknown ingest source", "source", source)
		}
	}

	writeJSON(w, http.StatusOK, model.AgentResponse{
		Success:        true,
		Data:           map[string]any{"items": items, "events": events},
		ProcessingTime: time.Since(start).Seconds(),
	})
}

// ---------------------------------------------------------------------------
// POST /api/categorize
// ---------------------------------------------------------------------------

type categorizeRequest struct {
	ContentItems []model.ContentItem `json:"content_items"`
}

func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req categorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.AgentResponse{Success: false, Error: "invalid JSON body"})
		return
	}
	if len(req.ContentItems) == 0 {
		writeJSON(w, http.StatusBadRequest, model.AgentResponse{Success: false, Error: "content_items is required"})
		return
	}

	items := s.mapper.EnrichAll(r.Context(), req.ContentItems)
	relationships := s.mapper.FindRelationships(r.Context(), items)

	writeJSON(w, http.StatusOK, model.AgentResponse{
		Success:        true,
		Data:           map[string]any{"items": items, "relationships": relationships},
		ProcessingTime: time.Since(start).Seconds(),
	})
}

// ---------------------------------------------------------------------------
// POST /api/plan
// ---------------------------------------------------------------------------

type planRequest struct {
	ContentItems []model.ContentItem `json:"content_items"`
	UserGoals    []string            `json:"user_goals"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.AgentResponse{Success: false, Error: "invalid JSON body"})
		return
	}
	if len(req.ContentItems) == 0 && len(req.UserGoals) == 0 {
		writeJSON(w, http.StatusBadRequest, model.AgentResponse{Success: false, Error: "content_items or user_goals is required"})
		return
	}

	plan := s.planner.GeneratePlan(r.Context(), req.ContentItems, req.UserGoals)

	writeJSON(w, http.StatusOK, model.AgentResponse{
		Success:        true,
		Data:           plan,
		ProcessingTime: time.Since(start).Seconds(),
	})
}

// ---------------------------------------------------------------------------
// POST /api/suggest-next-steps
// ---------------------------------------------------------------------------

type suggestRequest struct {
	ContentIDs     []string `json:"content_ids"`
	CompletedSteps []string `json:"completed_steps"`
}

func (s *Server) handleSuggestNextSteps(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.AgentResponse{Success: false, Error: "invalid JSON body"})
		return
	}

	items := s.resolveContent(req.ContentIDs)
	suggestions := s.planner.SuggestNextSteps(r.Context(), items, req.CompletedSteps)

	writeJSON(w, http.StatusOK, model.AgentResponse{
		Success:        true,
		Data:           map[string]any{"suggestions": suggestions},
		ProcessingTime: time.Since(start).Seconds(),
	})
}

// resolveContent looks up stored items by id, skipping unknown ids.
func (s *Server) resolveContent(ids []string) []model.ContentItem {
	items := make([]model.ContentItem, 0, len(ids))
	for _, id := range ids {
		if item, err := s.content.Get(id); err == nil {
			items = append(items, item)
		}
	}
	return items
}
