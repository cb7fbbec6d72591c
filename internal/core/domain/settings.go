package domain

// AIProvider identifies the AI/embedding provider
type AIProvider string

const (
	AIProviderGemini AIProvider = "gemini"
	AIProviderOpenAI AIProvider = "openai"
)

// EmbeddingSettings configures the embedding backend.
// The same settings must drive both ingestion and query embedding,
// otherwise similarity scores are meaningless.
type EmbeddingSettings struct {
	Provider   AIProvider `json:"provider"`
	APIKey     string     `json:"-"` // Never serialize
	Model      string     `json:"model"`
	BaseURL    string     `json:"base_url,omitempty"`
	Dimensions int        `json:"dimensions"`
}

// IsConfigured returns true if the settings are usable
func (s *EmbeddingSettings) IsConfigured() bool {
	return s != nil && s.Provider != "" && s.APIKey != ""
}

// SynthesizerSettings configures the answer synthesis model.
type SynthesizerSettings struct {
	Provider AIProvider `json:"provider"`
	APIKey   string     `json:"-"` // Never serialize
	Model    string     `json:"model"`
	BaseURL  string     `json:"base_url,omitempty"`
}

// IsConfigured returns true if the settings are usable
func (s *SynthesizerSettings) IsConfigured() bool {
	return s != nil && s.Provider != "" && s.APIKey != ""
}

// DefaultEmbeddingSettings returns the production defaults:
// Gemini embedding-001 at 768 dimensions.
func DefaultEmbeddingSettings(apiKey string) *EmbeddingSettings {
	return &EmbeddingSettings{
		Provider:   AIProviderGemini,
		APIKey:     apiKey,
		Model:      "embedding-001",
		Dimensions: 768,
	}
}

// DefaultSynthesizerSettings returns the production defaults.
func DefaultSynthesizerSettings(apiKey string) *SynthesizerSettings {
	return &SynthesizerSettings{
		Provider: AIProviderGemini,
		APIKey:   apiKey,
		Model:    "gemini-2.0-flash",
	}
}

// IndexSettings describes the vector index namespace the corpus lives in.
// A namespace is created once with a fixed dimension and metric.
type IndexSettings struct {
	Namespace string `json:"namespace"`
	Dimension int    `json:"dimension"`
	Metric    string `json:"metric"`
}

// DefaultIndexSettings returns the production corpus settings.
func DefaultIndexSettings() IndexSettings {
	return IndexSettings{
		Namespace: "medical-chatbot-gemini",
		Dimension: 768,
		Metric:    "cosine",
	}
}
