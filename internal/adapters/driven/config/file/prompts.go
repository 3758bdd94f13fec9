package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// templateExt is the file extension of prompt templates.
const templateExt = ".txt"

var defaultPrompts = map[string]string{
	driven.PromptWrite: `{tree}

{input}

The goal of the whole chat is to have a {content_type} content type.
Use the search tool to look up the indexed documents and cite the files you use.`,
}

// PromptStore serves prompt templates from <dir>/<name>.txt.
//
// The first Load of a known prompt writes its default template to disk so
// the user has a file to edit. Nothing touches the disk before that.
type PromptStore struct {
	dir string

	mu    sync.Mutex
	cache map[string]string
}

// NewPromptStore creates a file-based prompt store.
// If dir is empty, defaults to ~/.docscribe/prompts/.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		base, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "prompts")
	}

	return &PromptStore{
		dir:   dir,
		cache: make(map[string]string),
	}, nil
}

// Load returns the template for name.
// Disk problems are logged and answered with the built-in template.
func (s *PromptStore) Load(name string) (string, error) {
	fallback, known := defaultPrompts[name]

	s.mu.Lock()
	defer s.mu.Unlock()

	if prompt, ok := s.cache[name]; ok {
		return prompt, nil
	}

	prompt, err := s.read(name)
	switch {
	case err == nil:
		if known {
			checkPlaceholders(name, prompt)
		}
	case !known:
		return "", fmt.Errorf("%w: prompt %q: %v", domain.ErrNotFound, name, err)
	case errors.Is(err, fs.ErrNotExist):
		if err := s.materialise(name, fallback); err != nil {
			logger.Warn("Prompt %s: %v", name, err)
		}
		prompt = fallback
	default:
		logger.Warn("Prompt %s: %v, using built-in template", name, err)
		prompt = fallback
	}

	s.cache[name] = prompt
	return prompt, nil
}

// Reload drops cached templates so the next Load reads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.dir
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+templateExt)
}

func (s *PromptStore) read(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// materialise writes the default template so it can be edited.
func (s *PromptStore) materialise(name, content string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}
	if err := os.WriteFile(s.path(name), []byte(content), 0600); err != nil {
		return fmt.Errorf("write default template: %w", err)
	}
	return nil
}

// checkPlaceholders warns about placeholders an edited template dropped.
func checkPlaceholders(name, prompt string) {
	for _, p := range []string{"{tree}", "{input}", "{content_type}"} {
		if strings.Contains(defaultPrompts[name], p) && !strings.Contains(prompt, p) {
			logger.Warn("Prompt %s has no %s placeholder", name, p)
		}
	}
}
