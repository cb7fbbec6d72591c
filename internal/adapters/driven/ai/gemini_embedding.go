package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
)

// Ensure GeminiEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*GeminiEmbedding)(nil)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiEmbedding implements EmbeddingService using the Gemini
// embedContent API. Documents and queries use distinct task types so
// the model can optimize each side of the retrieval pair.
type GeminiEmbedding struct {
	apiKey     string
	model      string
	baseURL    string
	dimensions int
	client     *http.Client
}

// NewGeminiEmbedding creates a new Gemini embedding service
func NewGeminiEmbedding(apiKey, model, baseURL string, dimensions int) (driven.EmbeddingService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "embedding-001"
	}
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if dimensions <= 0 {
		dimensions = 768
	}

	return &GeminiEmbedding{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		dimensions: dimensions,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// geminiContent is a single content payload
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiEmbedRequest is one entry of a batchEmbedContents request
type geminiEmbedRequest struct {
	Model    string        `json:"model"`
	Content  geminiContent `json:"content"`
	TaskType string        `json:"taskType,omitempty"`
}

type geminiBatchEmbedRequest struct {
	Requests []geminiEmbedRequest `json:"requests"`
}

type geminiEmbedding struct {
	Values []float32 `json:"values"`
}

type geminiBatchEmbedResponse struct {
	Embeddings []geminiEmbedding `json:"embeddings"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiEmbedResponse struct {
	Embedding geminiEmbedding `json:"embedding"`
	Error     *geminiError    `json:"error,omitempty"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Embed generates embeddings for multiple texts in one batch call
func (e *GeminiEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := geminiBatchEmbedRequest{
		Requests: make([]geminiEmbedRequest, len(texts)),
	}
	for i, text := range texts {
		reqBody.Requests[i] = geminiEmbedRequest{
			Model:    "models/" + e.model,
			Content:  geminiContent{Parts: []geminiPart{{Text: text}}},
			TaskType: "RETRIEVAL_DOCUMENT",
		}
	}

	url := fmt.Sprintf("%s/models/%s:batchEmbedContents", e.baseURL, e.model)
	respBody, err := e.doRequest(ctx, url, reqBody)
	if err != nil {
		return nil, err
	}

	var resp geminiBatchEmbedResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrEmbedding, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: Gemini API error: %s (status: %s)", domain.ErrEmbedding, resp.Error.Message, resp.Error.Status)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", domain.ErrEmbedding, len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// EmbedQuery generates an embedding for a search query
func (e *GeminiEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	reqBody := geminiEmbedRequest{
		Model:    "models/" + e.model,
		Content:  geminiContent{Parts: []geminiPart{{Text: query}}},
		TaskType: "RETRIEVAL_QUERY",
	}

	url := fmt.Sprintf("%s/models/%s:embedContent", e.baseURL, e.model)
	respBody, err := e.doRequest(ctx, url, reqBody)
	if err != nil {
		return nil, err
	}

	var resp geminiEmbedResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrEmbedding, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: Gemini API error: %s (status: %s)", domain.ErrEmbedding, resp.Error.Message, resp.Error.Status)
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned for query", domain.ErrEmbedding)
	}
	return resp.Embedding.Values, nil
}

// Dimensions returns the embedding dimension size
func (e *GeminiEmbedding) Dimensions() int {
	return e.dimensions
}

// Model returns the model name being used
func (e *GeminiEmbedding) Model() string {
	return e.model
}

// HealthCheck verifies the embedding service is available
func (e *GeminiEmbedding) HealthCheck(ctx context.Context) error {
	_, err := e.EmbedQuery(ctx, "health check")
	return err
}

// Close releases resources held by the embedding service
func (e *GeminiEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

// doRequest posts the body to the Gemini API and returns the raw response
func (e *GeminiEmbedding) doRequest(ctx context.Context, url string, reqBody interface{}) ([]byte, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", domain.ErrEmbedding, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrEmbedding, err)
	}

	if resp.StatusCode != http.StatusOK {
		// The body may still carry a structured error; let callers parse it
		var parsed struct {
			Error *geminiError `json:"error"`
		}
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error != nil {
			return nil, fmt.Errorf("%w: Gemini API error: %s (status: %s)", domain.ErrEmbedding, parsed.Error.Message, parsed.Error.Status)
		}
		return nil, fmt.Errorf("%w: Gemini API returned status %d", domain.ErrEmbedding, resp.StatusCode)
	}

	return respBody, nil
}
