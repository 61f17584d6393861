package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a backend answers without usable text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
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

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Apply folds opts over the defaults.
func Apply(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// LLMProvider defines the contract for any conversational backend
type LLMProvider interface {
	// Generate sends a single prompt and returns the reply text
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
