package llamacpp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"llamadesk-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWeightFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.gguf")
	require.NoError(t, os.WriteFile(path, []byte("GGUF"), 0o644))
	return path
}

func newRuntimeStub(t *testing.T, healthHits *atomic.Int64, reply string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if healthHits != nil {
			healthHits.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: reply}}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadFailsWithoutWeightFile(t *testing.T) {
	srv := newRuntimeStub(t, nil, "")
	engine := NewEngine(Config{
		ServerURL: srv.URL,
		ModelPath: filepath.Join(t.TempDir(), "missing.gguf"),
		Device:    "cpu",
	})

	err := engine.Load(context.Background())
	var loadErr *llm.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Reason, "weight file not found")
	assert.False(t, engine.IsLoaded())
}

func TestLoadFailsWhenRuntimeUnreachable(t *testing.T) {
	srv := newRuntimeStub(t, nil, "")
	srv.Close() // nobody listening

	engine := NewEngine(Config{ServerURL: srv.URL, ModelPath: writeWeightFile(t), Device: "cpu"})

	err := engine.Load(context.Background())
	var loadErr *llm.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.False(t, engine.IsLoaded())
}

func TestLoadIsIdempotent(t *testing.T) {
	var healthHits atomic.Int64
	srv := newRuntimeStub(t, &healthHits, "")
	engine := NewEngine(Config{ServerURL: srv.URL, ModelPath: writeWeightFile(t), Device: "cpu"})
	ctx := context.Background()

	require.NoError(t, engine.Load(ctx))
	require.NoError(t, engine.Load(ctx))

	assert.EqualValues(t, 1, healthHits.Load())
	assert.True(t, engine.IsLoaded())
}

func TestFailedLoadRetries(t *testing.T) {
	srv := newRuntimeStub(t, nil, "")
	missing := filepath.Join(t.TempDir(), "late.gguf")
	engine := NewEngine(Config{ServerURL: srv.URL, ModelPath: missing, Device: "cpu"})
	ctx := context.Background()

	require.Error(t, engine.Load(ctx))

	// The weight file arrives after the first attempt; the handle recovers
	// without a process restart.
	require.NoError(t, os.WriteFile(missing, []byte("GGUF"), 0o644))
	require.NoError(t, engine.Load(ctx))
	assert.True(t, engine.IsLoaded())
}

func TestChatLoadsLazilyAndParsesReply(t *testing.T) {
	var healthHits atomic.Int64
	srv := newRuntimeStub(t, &healthHits, "hello back")
	engine := NewEngine(Config{ServerURL: srv.URL, ModelPath: writeWeightFile(t), Device: "cpu"})

	reply, err := engine.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, "hello back", reply)
	assert.EqualValues(t, 1, healthHits.Load())
	assert.True(t, engine.IsLoaded())
}

func TestChatRuntimeErrorIsGenerationError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "context window exceeded", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	engine := NewEngine(Config{ServerURL: srv.URL, ModelPath: writeWeightFile(t), Device: "cpu"})

	_, err := engine.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)
	// A generation failure must not masquerade as a load failure.
	var loadErr *llm.LoadError
	assert.False(t, errors.As(err, &loadErr))
}

func TestChatEmptyChoicesIsGenerationError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	engine := NewEngine(Config{ServerURL: srv.URL, ModelPath: writeWeightFile(t), Device: "cpu"})

	_, err := engine.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	var genErr *llm.GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestGenerateWrapsSinglePrompt(t *testing.T) {
	srv := newRuntimeStub(t, nil, "pong")
	engine := NewEngine(Config{ServerURL: srv.URL, ModelPath: writeWeightFile(t), Device: "gpu"})

	reply, err := engine.Generate(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", reply)
	assert.Equal(t, "gpu", engine.Device())
}
