package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedBackend    = "embedding.backend"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key"
	keyEmbedCacheDir   = "embedding.cache_dir"
	keyEmbedDimensions = "embedding.dimensions"
	keyChunkSize       = "chunking.size"
	keyChunkOverlap    = "chunking.overlap"
	keySearchTopK      = "search.top_k"
	keySearchRRFK      = "search.rrf_k"
)

// Environment variables, one per config key. They override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
var envKeys = map[string]string{
	keyEmbedBackend:    "DOCSCRIBE_EMBEDDING_BACKEND",
	keyEmbedModel:      "DOCSCRIBE_EMBEDDING_MODEL",
	keyEmbedBaseURL:    "DOCSCRIBE_EMBEDDING_BASE_URL",
	keyEmbedAPIKey:     "DOCSCRIBE_API_KEY",
	keyEmbedCacheDir:   "DOCSCRIBE_CACHE_DIR",
	keyEmbedDimensions: "DOCSCRIBE_EMBEDDING_DIMENSIONS",
	keyChunkSize:       "DOCSCRIBE_CHUNK_SIZE",
	keyChunkOverlap:    "DOCSCRIBE_CHUNK_OVERLAP",
	keySearchTopK:      "DOCSCRIBE_TOP_K",
	keySearchRRFK:      "DOCSCRIBE_RRF_K",
}

// intKeys lists the keys holding integers.
var intKeys = map[string]bool{
	keyEmbedDimensions: true,
	keyChunkSize:       true,
	keyChunkOverlap:    true,
	keySearchTopK:      true,
	keySearchRRFK:      true,
}

// envOpenAIKey is read when no docscribe-specific key is configured.
const envOpenAIKey = "OPENAI_API_KEY"

// SettingsService resolves application settings from defaults, the config
// file and the environment, in increasing order of precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// SettingsOption configures the settings service.
type SettingsOption func(*SettingsService)

// WithLookupEnv replaces os.LookupEnv as the environment source.
func WithLookupEnv(lookup func(string) (string, bool)) SettingsOption {
	return func(s *SettingsService) {
		s.lookupEnv = lookup
	}
}

// NewSettingsService creates a new settings service.
// configStore may be nil, in which case only defaults and environment apply.
func NewSettingsService(configStore driven.ConfigStore, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves the resolved settings.
// The embedding model defaults to the chosen backend's model when unset.
// Keys in the config file that no setting reads are configuration errors.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if err := s.checkFileKeys(); err != nil {
		return nil, err
	}

	settings := domain.DefaultAppSettings()
	settings.Embedding.Model = ""

	strs := map[string]*string{
		keyEmbedModel:    &settings.Embedding.Model,
		keyEmbedBaseURL:  &settings.Embedding.BaseURL,
		keyEmbedAPIKey:   &settings.Embedding.APIKey,
		keyEmbedCacheDir: &settings.Embedding.CacheDir,
	}
	ints := map[string]*int{
		keyEmbedDimensions: &settings.Embedding.Dimensions,
		keyChunkSize:       &settings.Chunking.Size,
		keyChunkOverlap:    &settings.Chunking.Overlap,
		keySearchTopK:      &settings.Search.TopK,
		keySearchRRFK:      &settings.Search.RRFK,
	}

	backend := settings.Embedding.Backend.String()
	strs[keyEmbedBackend] = &backend

	for key, dst := range strs {
		if v, ok := s.fileString(key); ok {
			*dst = v
		}
		if v, ok := s.env(key); ok && v != "" {
			*dst = v
		}
	}

	for key, dst := range ints {
		v, ok, err := s.fileInt(key)
		if err != nil {
			return nil, err
		}
		if ok {
			*dst = v
		}

		v, ok, err = s.envInt(key)
		if err != nil {
			return nil, err
		}
		if ok {
			*dst = v
		}
	}

	if settings.Embedding.APIKey == "" {
		if v, ok := s.lookupEnv(envOpenAIKey); ok {
			settings.Embedding.APIKey = strings.TrimSpace(v)
		}
	}

	settings.Embedding.Backend = domain.EmbeddingBackend(strings.ToLower(backend))
	if settings.Embedding.Model == "" {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[settings.Embedding.Backend]
	}

	return &settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate resolves the settings and checks them.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// Set validates and persists a single config file value.
// Integer keys must parse as integers.
func (s *SettingsService) Set(key, value string) error {
	if _, ok := envKeys[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrConfiguration, key)
	}
	if s.configStore == nil {
		return fmt.Errorf("%w: no config file", domain.ErrConfiguration)
	}

	value = strings.TrimSpace(value)
	if !intKeys[key] {
		return s.configStore.Set(key, value)
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrConfiguration, key, value)
	}
	return s.configStore.Set(key, n)
}

func (s *SettingsService) checkFileKeys() error {
	if s.configStore == nil {
		return nil
	}
	for _, key := range s.configStore.Keys() {
		if _, ok := envKeys[key]; !ok {
			return fmt.Errorf("%w: unknown setting %q in %s", domain.ErrConfiguration, key, s.configStore.Path())
		}
	}
	return nil
}

func (s *SettingsService) fileString(key string) (string, bool) {
	if s.configStore == nil {
		return "", false
	}
	if _, ok := s.configStore.Get(key); !ok {
		return "", false
	}
	return s.configStore.GetString(key), true
}

// fileInt reads an integer from the config file.
// TOML integers decode as int64; anything else is a configuration error.
func (s *SettingsService) fileInt(key string) (int, bool, error) {
	if s.configStore == nil {
		return 0, false, nil
	}
	val, ok := s.configStore.Get(key)
	if !ok {
		return 0, false, nil
	}

	switch v := val.(type) {
	case int64:
		return int(v), true, nil
	case int:
		return v, true, nil
	default:
		return 0, false, fmt.Errorf("%w: %s in %s must be an integer, got %v",
			domain.ErrConfiguration, key, s.configStore.Path(), val)
	}
}

func (s *SettingsService) env(key string) (string, bool) {
	v, ok := s.lookupEnv(envKeys[key])
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (s *SettingsService) envInt(key string) (int, bool, error) {
	v, ok := s.env(key)
	if !ok || v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrConfiguration, envKeys[key], v)
	}
	return n, true, nil
}
