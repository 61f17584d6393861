// Package gemini serves the Google Gemini model family through langchaingo.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"chatrelay-be/pkg/llm"
)

const DefaultModel = "gemini-1.5-flash"

// FallbackModels are tried after the preferred model, in this order.
var FallbackModels = []string{"gemini-1.5-flash", "gemini-pro", "gemini-1.0-pro"}

type GeminiProvider struct {
	model        llms.Model
	defaultModel string
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, defaultModel string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is empty")
	}
	if defaultModel == "" {
		defaultModel = DefaultModel
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(defaultModel),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return NewWithModel(client, defaultModel), nil
}

// NewWithModel wraps any langchaingo model, e.g. a fake in tests.
func NewWithModel(model llms.Model, defaultModel string) *GeminiProvider {
	if defaultModel == "" {
		defaultModel = DefaultModel
	}
	return &GeminiProvider{model: model, defaultModel: defaultModel}
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Model: g.defaultModel}, opts...)

	callOpts := []llms.CallOption{llms.WithModel(options.Model)}
	if options.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(options.Temperature))
	}
	if options.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(options.MaxTokens))
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", options.Model, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini %s: %w", options.Model, llm.ErrEmptyResponse)
	}
	return text, nil
}

// ModelVariants returns preferred followed by FallbackModels, without duplicates.
func ModelVariants(preferred string) []string {
	if preferred == "" {
		preferred = DefaultModel
	}

	seen := make(map[string]struct{}, len(FallbackModels)+1)
	variants := make([]string, 0, len(FallbackModels)+1)
	for _, m := range append([]string{preferred}, FallbackModels...) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		variants = append(variants, m)
	}
	return variants
}
