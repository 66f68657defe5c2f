package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// Engine is an LLMProvider backed by a locally-managed model handle.
// Loading is lazy (first Chat call) and idempotent; the handle is
// constructed once per process and injected, never held as a package
// global.
type Engine interface {
	LLMProvider

	// Load brings the model up. Returns a *LoadError when the weight
	// file is missing or the runtime cannot be reached. No-op when
	// already loaded.
	Load(ctx context.Context) error
	IsLoaded() bool
	Device() string
}
