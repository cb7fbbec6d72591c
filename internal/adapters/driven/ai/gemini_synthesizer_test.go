package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

func TestNewGeminiSynthesizer_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiSynthesizer("", "gemini-2.0-flash", "")
	if err == nil {
		t.Fatal("expected an error for missing API key")
	}
}

func TestGeminiSynthesizer_Synthesize(t *testing.T) {
	var gotBody geminiGenerateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]string{{"text": "Rest and drink fluids.\n"}},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
	defer server.Close()

	svc, err := NewGeminiSynthesizer("test-key", "gemini-2.0-flash", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answer, err := svc.Synthesize(context.Background(), "how do I treat a cold?", []string{"chunk one", "chunk two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Rest and drink fluids." {
		t.Errorf("unexpected answer %q", answer)
	}

	if gotBody.GenerationConfig.Temperature != 0 {
		t.Errorf("expected temperature 0, got %v", gotBody.GenerationConfig.Temperature)
	}
	if gotBody.SystemInstruction == nil {
		t.Fatal("expected a system instruction")
	}
	instruction := gotBody.SystemInstruction.Parts[0].Text
	if !strings.Contains(instruction, domain.RefusalMessage) {
		t.Error("system instruction must carry the exact refusal string")
	}

	prompt := gotBody.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "chunk one") || !strings.Contains(prompt, "chunk two") {
		t.Error("prompt must include all context chunks")
	}
	if !strings.Contains(prompt, "how do I treat a cold?") {
		t.Error("prompt must include the query")
	}
}

func TestGeminiSynthesizer_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    500,
				"message": "internal error",
				"status":  "INTERNAL",
			},
		})
	}))
	defer server.Close()

	svc, err := NewGeminiSynthesizer("test-key", "gemini-2.0-flash", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Synthesize(context.Background(), "query", []string{"context"})
	if !errors.Is(err, domain.ErrSynthesis) {
		t.Errorf("expected ErrSynthesis, got %v", err)
	}
}

func TestGeminiSynthesizer_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	svc, err := NewGeminiSynthesizer("test-key", "gemini-2.0-flash", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Synthesize(context.Background(), "query", []string{"context"})
	if !errors.Is(err, domain.ErrSynthesis) {
		t.Errorf("expected ErrSynthesis for empty candidates, got %v", err)
	}
}

func TestGeminiSynthesizer_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]string{"name": "models/gemini-2.0-flash"})
	}))
	defer server.Close()

	svc, err := NewGeminiSynthesizer("test-key", "gemini-2.0-flash", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Ping(context.Background()); err != nil {
		t.Errorf("unexpected ping error: %v", err)
	}
}

func TestGeminiSynthesizer_PingFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc, err := NewGeminiSynthesizer("bad-key", "gemini-2.0-flash", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Ping(context.Background()); err == nil {
		t.Error("expected a ping error")
	}
}
