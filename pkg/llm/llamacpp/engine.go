// Package llamacpp drives a local llama.cpp runtime (llama-server) over its
// OpenAI-compatible HTTP surface. The engine is a stateful handle: it checks
// the GGUF weight file on disk and probes the runtime before the first
// generation, then reuses the same connection for the life of the process.
package llamacpp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"llamadesk-be/pkg/llm"
)

type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateFailed
)

type Config struct {
	ServerURL string // llama-server base URL, e.g. http://127.0.0.1:8080
	ModelPath string // GGUF weight file the runtime serves
	Device    string // "cpu" or "cuda", reported on /status
}

type Engine struct {
	cfg    Config
	client *http.Client

	mu    sync.Mutex // serializes load and generation; one request at a time
	state State
}

// Ensure Engine implements the full engine contract
var _ llm.Engine = &Engine{}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg: cfg,
		client: &http.Client{
			// A stuck native call surfaces as a GenerationError instead of
			// blocking the request forever.
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type chatCompletionRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// --- Interface Implementation ---

func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadLocked(ctx)
}

// loadLocked is idempotent: a loaded handle returns immediately, a failed
// one retries so a runtime started after the backend still gets picked up.
func (e *Engine) loadLocked(ctx context.Context) error {
	if e.state == StateLoaded {
		return nil
	}

	if _, err := os.Stat(e.cfg.ModelPath); err != nil {
		e.state = StateFailed
		return &llm.LoadError{Reason: "weight file not found at " + e.cfg.ModelPath, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.ServerURL+"/health", nil)
	if err != nil {
		e.state = StateFailed
		return &llm.LoadError{Reason: "build health request", Err: err}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.state = StateFailed
		return &llm.LoadError{Reason: "llama runtime unreachable at " + e.cfg.ServerURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.state = StateFailed
		return &llm.LoadError{Reason: fmt.Sprintf("llama runtime not ready: status %d", resp.StatusCode)}
	}

	e.state = StateLoaded
	return nil
}

func (e *Engine) IsLoaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == StateLoaded
}

func (e *Engine) Device() string {
	return e.cfg.Device
}

func (e *Engine) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.loadLocked(ctx); err != nil {
		return "", err
	}

	options := &llm.Options{
		Temperature: 0.7,
		MaxTokens:   1024,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		messages[i] = chatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	reqPayload := chatCompletionRequest{
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		Stream:      false,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", &llm.GenerationError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	url := e.cfg.ServerURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", &llm.GenerationError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", &llm.GenerationError{Err: fmt.Errorf("llama request failed: %w", err)}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.GenerationError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &llm.GenerationError{Err: fmt.Errorf("llama error: status %d, body: %s", resp.StatusCode, string(bodyBytes))}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &completion); err != nil {
		return "", &llm.GenerationError{Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(completion.Choices) == 0 {
		return "", &llm.GenerationError{Err: fmt.Errorf("llama returned no choices")}
	}

	return completion.Choices[0].Message.Content, nil
}

func (e *Engine) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return e.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
