package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

func TestSettingsShow_Defaults(t *testing.T) {
	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Embedding]")
	assert.Contains(t, out, "Backend: Hashing (in-process)")
	assert.Contains(t, out, "Model: hashing-384")
	assert.Contains(t, out, "Cache: disabled")
	assert.Contains(t, out, "Size: 1000")
	assert.Contains(t, out, "Overlap: 200")
	assert.Contains(t, out, "Top K: 7")
	assert.Contains(t, out, "RRF K: 60")
	assert.Contains(t, out, "Configuration is valid.")
	assert.NotContains(t, out, "API Key")
}

func TestSettingsShow_MasksAPIKey(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DOCSCRIBE_EMBEDDING_BACKEND", "openai")
	t.Setenv("DOCSCRIBE_API_KEY", "sk-test-0123456789abcd")

	out, err := executeIn(context.Background(), t, t.TempDir(), "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "API Key: sk-t...abcd")
	assert.NotContains(t, out, "sk-test-0123456789abcd")
	assert.Contains(t, out, "Model: text-embedding-3-small")
}

func TestSettingsShow_WarnsOnInvalidSettings(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DOCSCRIBE_EMBEDDING_BACKEND", "openai")

	out, err := executeIn(context.Background(), t, t.TempDir(), "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "Warning:")
}

func TestSettingsSet_Persists(t *testing.T) {
	clearSettingsEnv(t)
	configDir := t.TempDir()
	ctx := context.Background()

	out, err := executeIn(ctx, t, configDir, "settings", "set", "search.top_k", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Set search.top_k")

	_, err = executeIn(ctx, t, configDir, "settings", "set", "embedding.backend", "ollama")
	require.NoError(t, err)

	out, err = executeIn(ctx, t, configDir, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Top K: 3")
	assert.Contains(t, out, "Backend: Ollama (local model server)")
}

func TestSettingsSet_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"settings", "set", "search.mode", "hybrid"}},
		{"non-integer", []string{"settings", "set", "chunking.size", "big"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", maskAPIKey("sk-abcdefghwxyz"))
}
