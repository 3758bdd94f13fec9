package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrExtractionFailed", ErrExtractionFailed},
		{"ErrEmptyCorpus", ErrEmptyCorpus},
		{"ErrConfiguration", ErrConfiguration},
		{"ErrNotInitialized", ErrNotInitialized},
		{"ErrEmbeddingFailed", ErrEmbeddingFailed},
		{"ErrSessionClosed", ErrSessionClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that no two error kinds match each other
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrUnsupportedFormat, ErrExtractionFailed,
		ErrEmptyCorpus, ErrConfiguration, ErrNotInitialized, ErrEmbeddingFailed,
		ErrSessionClosed,
	}

	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

// TestErrors_Wrapping tests that wrapped errors can be unwrapped
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading /tmp/app.exe: %w", ErrUnsupportedFormat)
	assert.True(t, errors.Is(wrapped, ErrUnsupportedFormat))
	assert.False(t, errors.Is(wrapped, ErrExtractionFailed))

	twice := fmt.Errorf("build: %w", fmt.Errorf("embed batch: %w", ErrEmbeddingFailed))
	assert.True(t, errors.Is(twice, ErrEmbeddingFailed))
}

func TestErrNotInitialized(t *testing.T) {
	assert.Equal(t, "index not initialized", ErrNotInitialized.Error())
}
