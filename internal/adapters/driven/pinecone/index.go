package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
)

// Ensure Index implements VectorIndex
var _ driven.VectorIndex = (*Index)(nil)

const (
	defaultControllerURL = "https://api.pinecone.io"
	upsertBatchSize      = 100
)

// Index is a REST client to Pinecone serverless. A port namespace maps
// to a Pinecone index; data-plane hosts are resolved via the control
// plane and cached per namespace.
type Index struct {
	apiKey        string
	controllerURL string
	cloud         string
	region        string
	client        *http.Client

	mu    sync.RWMutex
	hosts map[string]string
}

// Config holds Pinecone connection settings.
type Config struct {
	APIKey        string
	ControllerURL string // defaults to the public control plane
	Cloud         string // serverless cloud, defaults to aws
	Region        string // serverless region, defaults to us-east-1
	Timeout       time.Duration
}

// New creates a new Pinecone index client.
func New(cfg Config) (*Index, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Pinecone API key is required")
	}
	if cfg.ControllerURL == "" {
		cfg.ControllerURL = defaultControllerURL
	}
	if cfg.Cloud == "" {
		cfg.Cloud = "aws"
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Index{
		apiKey:        cfg.APIKey,
		controllerURL: cfg.ControllerURL,
		cloud:         cfg.Cloud,
		region:        cfg.Region,
		client:        &http.Client{Timeout: timeout},
		hosts:         make(map[string]string),
	}, nil
}

type describeIndexResponse struct {
	Name      string `json:"name"`
	Dimension int    `json:"dimension"`
	Metric    string `json:"metric"`
	Host      string `json:"host"`
	Status    struct {
		Ready bool   `json:"ready"`
		State string `json:"state"`
	} `json:"status"`
}

// EnsureNamespace creates the Pinecone index if it does not exist.
func (p *Index) EnsureNamespace(ctx context.Context, name string, dimension int, metric string) error {
	if desc, err := p.describeIndex(ctx, name); err == nil {
		if desc.Dimension != dimension {
			return fmt.Errorf("%w: index %s has dimension %d, expected %d",
				domain.ErrIndexProvisioning, name, desc.Dimension, dimension)
		}
		p.cacheHost(name, desc.Host)
		return nil
	} else if !isNotFound(err) {
		return fmt.Errorf("%w: describe index %s: %v", domain.ErrIndexProvisioning, name, err)
	}

	createBody := map[string]interface{}{
		"name":      name,
		"dimension": dimension,
		"metric":    metric,
		"spec": map[string]interface{}{
			"serverless": map[string]string{
				"cloud":  p.cloud,
				"region": p.region,
			},
		},
	}
	if _, err := p.doJSON(ctx, "POST", p.controllerURL+"/indexes", createBody); err != nil {
		return fmt.Errorf("%w: create index %s: %v", domain.ErrIndexProvisioning, name, err)
	}

	// A freshly created index takes a moment to come up
	for attempt := 0; attempt < 30; attempt++ {
		desc, err := p.describeIndex(ctx, name)
		if err == nil && desc.Status.Ready {
			p.cacheHost(name, desc.Host)
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", domain.ErrIndexProvisioning, ctx.Err())
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("%w: index %s did not become ready", domain.ErrIndexProvisioning, name)
}

// Upsert adds or replaces entries. The chunk text rides along in the
// metadata so Search can return it without a second lookup.
func (p *Index) Upsert(ctx context.Context, namespace string, entries []*domain.IndexEntry) error {
	host, err := p.host(ctx, namespace)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexQuery, err)
	}

	for start := 0; start < len(entries); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		vectors := make([]map[string]interface{}, 0, end-start)
		for _, e := range entries[start:end] {
			metadata := map[string]string{"text": e.Content}
			for k, v := range e.Metadata {
				metadata[k] = v
			}
			vectors = append(vectors, map[string]interface{}{
				"id":       e.ID,
				"values":   e.Vector,
				"metadata": metadata,
			})
		}

		body := map[string]interface{}{"vectors": vectors}
		if _, err := p.doJSON(ctx, "POST", host+"/vectors/upsert", body); err != nil {
			return fmt.Errorf("%w: upsert batch: %v", domain.ErrIndexQuery, err)
		}
	}
	return nil
}

type queryResponse struct {
	Matches []struct {
		ID       string            `json:"id"`
		Score    float64           `json:"score"`
		Metadata map[string]string `json:"metadata"`
	} `json:"matches"`
}

// Search returns up to k entries by descending similarity.
func (p *Index) Search(ctx context.Context, namespace string, vector []float32, k int) ([]*domain.RankedChunk, error) {
	host, err := p.host(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexQuery, err)
	}

	body := map[string]interface{}{
		"vector":          vector,
		"topK":            k,
		"includeMetadata": true,
	}
	respBody, err := p.doJSON(ctx, "POST", host+"/query", body)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", domain.ErrIndexQuery, err)
	}

	var resp queryResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: parse query response: %v", domain.ErrIndexQuery, err)
	}

	results := make([]*domain.RankedChunk, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		content := m.Metadata["text"]
		metadata := make(map[string]string, len(m.Metadata))
		for key, value := range m.Metadata {
			if key == "text" {
				continue
			}
			metadata[key] = value
		}
		results = append(results, &domain.RankedChunk{
			ID:       m.ID,
			Content:  content,
			Score:    m.Score,
			Metadata: metadata,
		})
	}
	return results, nil
}

// HealthCheck verifies the control plane is reachable.
func (p *Index) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", p.controllerURL+"/indexes", nil)
	if err != nil {
		return err
	}
	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Pinecone control plane returned status %d", resp.StatusCode)
	}
	return nil
}

// host returns the cached data-plane host for a namespace, resolving
// it via the control plane on first use.
func (p *Index) host(ctx context.Context, namespace string) (string, error) {
	p.mu.RLock()
	host, ok := p.hosts[namespace]
	p.mu.RUnlock()
	if ok {
		return host, nil
	}

	desc, err := p.describeIndex(ctx, namespace)
	if err != nil {
		return "", err
	}
	return p.cacheHost(namespace, desc.Host), nil
}

// cacheHost normalizes and remembers a data-plane host.
func (p *Index) cacheHost(namespace, host string) string {
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	p.mu.Lock()
	p.hosts[namespace] = host
	p.mu.Unlock()
	return host
}

func (p *Index) describeIndex(ctx context.Context, name string) (*describeIndexResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.controllerURL+"/indexes/"+name, nil)
	if err != nil {
		return nil, err
	}
	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("describe returned status %d: %s", resp.StatusCode, respBody)
	}

	var desc describeIndexResponse
	if err := json.Unmarshal(respBody, &desc); err != nil {
		return nil, fmt.Errorf("parse describe response: %w", err)
	}
	return &desc, nil
}

var errNotFound = fmt.Errorf("index not found")

func isNotFound(err error) bool {
	return err == errNotFound
}

func (p *Index) doJSON(ctx context.Context, method, url string, body interface{}) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	p.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, respBody)
	}
	return respBody, nil
}

func (p *Index) setHeaders(req *http.Request) {
	req.Header.Set("Api-Key", p.apiKey)
	req.Header.Set("X-Pinecone-API-Version", "2025-01")
}
