package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
)

// Ensure GeminiSynthesizer implements SynthesizerService
var _ driven.SynthesizerService = (*GeminiSynthesizer)(nil)

// systemPrompt instructs the model to answer strictly from the
// supplied context. The refusal string must match
// domain.RefusalMessage so callers can detect it verbatim.
const systemPrompt = "You are a medical assistant. Answer the question using only the provided context. " +
	"If the provided context is not relevant, say '" + domain.RefusalMessage + "'"

// GeminiSynthesizer implements SynthesizerService using the Gemini
// generateContent API at temperature zero.
type GeminiSynthesizer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiSynthesizer creates a new Gemini synthesizer
func NewGeminiSynthesizer(apiKey, model, baseURL string) (driven.SynthesizerService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}

	return &GeminiSynthesizer{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type geminiGenerateRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiTurn           `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiTurn struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *geminiError `json:"error,omitempty"`
}

// Synthesize answers the query from the supplied context chunks
func (s *GeminiSynthesizer) Synthesize(ctx context.Context, query string, contexts []string) (string, error) {
	prompt := buildPrompt(query, contexts)

	reqBody := geminiGenerateRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents: []geminiTurn{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{Temperature: 0},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", domain.ErrSynthesis, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", domain.ErrSynthesis, err)
	}

	var genResp geminiGenerateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", domain.ErrSynthesis, err)
	}
	if genResp.Error != nil {
		return "", fmt.Errorf("%w: Gemini API error: %s (status: %s)", domain.ErrSynthesis, genResp.Error.Message, genResp.Error.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: Gemini API returned status %d", domain.ErrSynthesis, resp.StatusCode)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", domain.ErrSynthesis)
	}

	return strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text), nil
}

// Model returns the model name being used
func (s *GeminiSynthesizer) Model() string {
	return s.model
}

// Ping verifies the synthesis service is available.
// Listing the model is the cheapest authenticated call.
func (s *GeminiSynthesizer) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources held by the synthesis service
func (s *GeminiSynthesizer) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// buildPrompt assembles the grounded question for the model
func buildPrompt(query string, contexts []string) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	for _, c := range contexts {
		b.WriteString(c)
		b.WriteString("\n---\n")
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(query)
	return b.String()
}
