package domain

import "fmt"

const unknownDescription = "Unknown"

// Defaults for chunking and retrieval.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTopK         = 7
	DefaultRRFK         = 60
)

// EmbeddingBackend names an embedding implementation.
type EmbeddingBackend string

// Available embedding backends.
const (
	// EmbeddingBackendOpenAI is the OpenAI (or compatible) remote API.
	EmbeddingBackendOpenAI EmbeddingBackend = "openai"

	// EmbeddingBackendOllama is a local Ollama model server.
	EmbeddingBackendOllama EmbeddingBackend = "ollama"

	// EmbeddingBackendHashing is an in-process feature-hashing model.
	EmbeddingBackendHashing EmbeddingBackend = "hashing"
)

// IsValid returns true if the backend is recognised.
func (b EmbeddingBackend) IsValid() bool {
	switch b {
	case EmbeddingBackendOpenAI, EmbeddingBackendOllama, EmbeddingBackendHashing:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this backend needs an API key.
func (b EmbeddingBackend) RequiresAPIKey() bool {
	return b == EmbeddingBackendOpenAI
}

// IsLocal returns true if inference happens on this machine.
func (b EmbeddingBackend) IsLocal() bool {
	return b == EmbeddingBackendOllama || b == EmbeddingBackendHashing
}

// String returns the string representation.
func (b EmbeddingBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b EmbeddingBackend) Description() string {
	switch b {
	case EmbeddingBackendOpenAI:
		return "OpenAI (remote API)"
	case EmbeddingBackendOllama:
		return "Ollama (local model server)"
	case EmbeddingBackendHashing:
		return "Hashing (in-process)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding backend configuration.
type EmbeddingSettings struct {
	// Backend selects the implementation.
	Backend EmbeddingBackend

	// Model is the embedding model identifier.
	Model string

	// BaseURL is the API endpoint. Empty means the backend default.
	BaseURL string

	// APIKey is the remote API credential.
	APIKey string

	// CacheDir holds the embedding cache database. Empty disables caching.
	CacheDir string

	// Dimensions overrides the model's declared output size.
	Dimensions int
}

// ChunkingSettings controls how documents are split.
type ChunkingSettings struct {
	// Size is the maximum chunk length in characters.
	Size int

	// Overlap is the number of trailing characters repeated at the start of the next chunk.
	Overlap int
}

// SearchSettings holds retrieval configuration.
type SearchSettings struct {
	// TopK is the default number of results requested from each index.
	TopK int

	// RRFK is the reciprocal rank fusion constant.
	RRFK int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding backend settings.
	Embedding EmbeddingSettings

	// Chunking holds splitter settings.
	Chunking ChunkingSettings

	// Search holds retrieval settings.
	Search SearchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The in-process hashing backend works without any network access.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Backend: EmbeddingBackendHashing,
			Model:   DefaultEmbeddingModels()[EmbeddingBackendHashing],
		},
		Chunking: ChunkingSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Search: SearchSettings{
			TopK: DefaultTopK,
			RRFK: DefaultRRFK,
		},
	}
}

// Validate checks the settings and returns an error wrapping ErrConfiguration.
func (s AppSettings) Validate() error {
	if !s.Embedding.Backend.IsValid() {
		return fmt.Errorf("%w: unknown embedding backend %q", ErrConfiguration, s.Embedding.Backend)
	}
	if s.Embedding.Backend.RequiresAPIKey() && s.Embedding.APIKey == "" {
		return fmt.Errorf("%w: embedding backend %s requires an API key", ErrConfiguration, s.Embedding.Backend)
	}
	if s.Embedding.Dimensions < 0 {
		return fmt.Errorf("%w: embedding dimensions must not be negative", ErrConfiguration)
	}
	if s.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfiguration, s.Chunking.Size)
	}
	if s.Chunking.Overlap < 0 || s.Chunking.Overlap >= s.Chunking.Size {
		return fmt.Errorf("%w: chunk overlap must be in [0, %d), got %d",
			ErrConfiguration, s.Chunking.Size, s.Chunking.Overlap)
	}
	if s.Search.TopK <= 0 {
		return fmt.Errorf("%w: top-k must be positive, got %d", ErrConfiguration, s.Search.TopK)
	}
	if s.Search.RRFK < 0 {
		return fmt.Errorf("%w: rrf constant must not be negative, got %d", ErrConfiguration, s.Search.RRFK)
	}
	return nil
}

// AllEmbeddingBackends returns every supported backend.
func AllEmbeddingBackends() []EmbeddingBackend {
	return []EmbeddingBackend{
		EmbeddingBackendOpenAI,
		EmbeddingBackendOllama,
		EmbeddingBackendHashing,
	}
}

// DefaultEmbeddingModels returns default models for each embedding backend.
func DefaultEmbeddingModels() map[EmbeddingBackend]string {
	return map[EmbeddingBackend]string{
		EmbeddingBackendOllama:  "nomic-embed-text",
		EmbeddingBackendOpenAI:  "text-embedding-3-small",
		EmbeddingBackendHashing: "hashing-384",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// In-process models
		"hashing-256": 256,
		"hashing-384": 384,
		"hashing-768": 768,
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFor returns the pipeline configuration for the given chunking settings.
func PipelineConfigFor(c ChunkingSettings) PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": c.Size,
				"overlap":    c.Overlap,
			},
		},
	}
}

// DefaultPipelineConfig returns the default pipeline configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfigFor(DefaultAppSettings().Chunking)
}
