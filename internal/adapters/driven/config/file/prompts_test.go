package file

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/logger"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	logger.SetOutput(buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return buf
}

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".docscribe", "prompts"), store.Dir())
}

func TestNewPromptStore_NoIOBeforeLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")

	_, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestPromptStore_Load_CreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptWrite)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "write.txt"))
	require.NoError(t, err)
	assert.Equal(t, prompt, string(data))
	for _, placeholder := range []string{"{tree}", "{input}", "{content_type}"} {
		assert.Contains(t, prompt, placeholder)
	}
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()
	custom := "Write a {content_type} about: {input}"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "write.txt"), []byte("\n  "+custom+"  \n\n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptWrite)

	require.NoError(t, err)
	assert.Equal(t, custom, prompt)

	// Existing files are never overwritten
	data, err := os.ReadFile(filepath.Join(dir, "write.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), custom)
}

func TestPromptStore_Load_FallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptWrite)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "write.txt")))
	store.Reload()

	prompt, err := store.Load(driven.PromptWrite)

	require.NoError(t, err)
	assert.Equal(t, defaultPrompts[driven.PromptWrite], prompt)
}

func TestPromptStore_Load_UnusableDirUsesDefaults(t *testing.T) {
	logs := captureLogs(t)
	store, err := NewPromptStore("/dev/null/prompts")
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptWrite)
	require.NoError(t, err)
	assert.Equal(t, defaultPrompts[driven.PromptWrite], prompt)
	assert.Contains(t, logs.String(), "[WARN] Prompt write")

	_, err = store.Load("outline")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPromptStore_Load_WarnsOnMissingPlaceholder(t *testing.T) {
	logs := captureLogs(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "write.txt"), []byte("{tree}\n{input}"), 0600))
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptWrite)

	require.NoError(t, err)
	assert.Equal(t, "{tree}\n{input}", prompt)
	assert.Contains(t, logs.String(), "no {content_type} placeholder")
	assert.NotContains(t, logs.String(), "no {input} placeholder")
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("outline")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "outline")
}

func TestPromptStore_CacheAndReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptWrite)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "write.txt"), []byte("edited {input}"), 0600))

	cached, err := store.Load(driven.PromptWrite)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()

	fresh, err := store.Load(driven.PromptWrite)
	require.NoError(t, err)
	assert.Equal(t, "edited {input}", fresh)
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	const goroutines = 50
	results := make([]string, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prompt, err := store.Load(driven.PromptWrite)
			assert.NoError(t, err)
			results[i] = prompt
		}(i)
	}
	wg.Wait()

	for _, prompt := range results {
		assert.Equal(t, results[0], prompt)
	}
}
