package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func geminiFixture(text string) geminiResponse {
	var resp geminiResponse
	resp.Candidates = make([]struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	}, 1)
	resp.Candidates[0].Content.Parts = []struct {
		Text string `json:"text"`
	}{{Text: text}}
	return resp
}

func TestNewGeminiClient_Defaults(t *testing.T) {
	c := NewGeminiClient("g-key")
	if c.model != "gemini-2.0-flash" {
		t.Errorf("model = %q, want %q", c.model, "gemini-2.0-flash")
	}
	if c.baseURL != "https://generativelanguage.googleapis.com/v1beta" {
		t.Errorf("baseURL = %q, want default Gemini URL", c.baseURL)
	}
}

func TestGeminiGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test-model:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "g-key" {
			t.Errorf("x-goog-api-key = %q, want %q", got, "g-key")
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Fatalf("unexpected request shape: %+v", req)
		}
		if req.GenerationConfig.MaxOutputTokens != 100 {
			t.Errorf("maxOutputTokens = %d, want 100", req.GenerationConfig.MaxOutputTokens)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiFixture("gemini says hi"))
	}))
	defer srv.Close()

	c := NewGeminiClient("g-key", WithGeminiModel("test-model"), WithGeminiBaseURL(srv.URL))
	got, err := c.Generate(context.Background(), "hi", GenerateOptions{Temperature: 0.3, MaxTokens: 100})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "gemini says hi" {
		t.Errorf("Generate = %q, want %q", got, "gemini says hi")
	}
}

func TestGeminiGenerate_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiResponse{})
	}))
	defer srv.Close()

	c := NewGeminiClient("g-key", WithGeminiBaseURL(srv.URL))
	_, err := c.Generate(context.Background(), "hi", GenerateOptions{})
	if err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestGeminiGenerate_NoRetryOn4xx(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("key not authorized"))
	}))
	defer srv.Close()

	c := NewGeminiClient("bad-key", WithGeminiBaseURL(srv.URL))
	_, err := c.Generate(context.Background(), "hi", GenerateOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (should not retry 4xx)", attempts)
	}
}
