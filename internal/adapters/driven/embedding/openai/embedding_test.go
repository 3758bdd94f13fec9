package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions"`
}

// fakeAPI serves /embeddings, returning vectors whose first component is the
// input length, in reverse order to exercise index handling.
func fakeAPI(t *testing.T, dims int, requests *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/embeddings", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req embeddingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		data := make([]map[string]any, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			vec := make([]float64, dims)
			vec[0] = float64(len(req.Input[i]))
			data = append(data, map[string]any{"object": "embedding", "index": i, "embedding": vec})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewEmbeddingService_Validation(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = NewEmbeddingService(Config{APIKey: "sk", Model: "custom-model"})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	svc, err := NewEmbeddingService(Config{APIKey: "sk", Model: "custom-model", Dimensions: 64})
	require.NoError(t, err)
	assert.Equal(t, 64, svc.Dimensions())
	assert.False(t, svc.sendDims)
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "sk"})
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
	assert.Equal(t, DefaultBatchSize, svc.batchSize)
	assert.True(t, svc.sendDims)
}

func TestEmbedBatch(t *testing.T) {
	var requests atomic.Int32
	srv := fakeAPI(t, 8, &requests)

	svc, err := NewEmbeddingService(Config{
		APIKey:            "sk-test",
		BaseURL:           srv.URL,
		Dimensions:        8,
		BatchSize:         2,
		MaxRetries:        -1,
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)

	vectors, err := svc.EmbedBatch(context.Background(), []string{"a", "bb", "ccc", ""})
	require.NoError(t, err)

	require.Len(t, vectors, 4)
	for i, want := range []float32{1, 2, 3, 1} {
		assert.Len(t, vectors[i], 8)
		assert.Equal(t, want, vectors[i][0], "input %d", i)
	}
	assert.Equal(t, int32(2), requests.Load())
}

func TestEmbed_DimensionMismatch(t *testing.T) {
	var requests atomic.Int32
	srv := fakeAPI(t, 4, &requests)

	svc, err := NewEmbeddingService(Config{
		APIKey:     "sk-test",
		BaseURL:    srv.URL,
		MaxRetries: -1,
	})
	require.NoError(t, err)

	_, err = svc.Embed(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
}

func TestEmbed_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: srv.URL, MaxRetries: -1})
	require.NoError(t, err)

	_, err = svc.Embed(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)

	assert.Error(t, svc.Ping(context.Background()))
}

func TestEmbed_CancelledContext(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: "http://127.0.0.1:1", MaxRetries: -1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Embed(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
}
