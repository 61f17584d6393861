package resolver

import (
	"context"
	"fmt"
	"strings"

	"chatrelay-be/pkg/llm"
)

const (
	ProviderRelay  = "relay"
	ProviderGemini = "gemini"
)

const DefaultOrder = ProviderRelay + "," + ProviderGemini

// Providers holds the configured backends. A nil provider is skipped.
type Providers struct {
	Relay        llm.LLMProvider
	Gemini       llm.LLMProvider
	GeminiModels []string
}

// ParseOrder splits a comma separated provider list and rejects unknown or
// repeated names.
func ParseOrder(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultOrder
	}

	seen := make(map[string]bool)
	var order []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		switch name {
		case ProviderRelay, ProviderGemini:
		default:
			return nil, fmt.Errorf("unknown ai provider %q", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("ai provider %q listed twice", name)
		}
		seen[name] = true
		order = append(order, name)
	}

	if len(order) == 0 {
		return nil, fmt.Errorf("ai provider order is empty")
	}
	return order, nil
}

// BuildChain expands order into attempts. The gemini entry becomes one attempt
// per model variant.
func BuildChain(order []string, p Providers) ([]Attempt, error) {
	var attempts []Attempt
	for _, name := range order {
		switch name {
		case ProviderRelay:
			if p.Relay == nil {
				continue
			}
			attempts = append(attempts, Attempt{Name: ProviderRelay, Run: generate(p.Relay)})
		case ProviderGemini:
			if p.Gemini == nil {
				continue
			}
			for _, model := range p.GeminiModels {
				attempts = append(attempts, Attempt{
					Name: ProviderGemini + ":" + model,
					Run:  generate(p.Gemini, llm.WithModel(model)),
				})
			}
		default:
			return nil, fmt.Errorf("unknown ai provider %q", name)
		}
	}
	return attempts, nil
}

func generate(provider llm.LLMProvider, opts ...llm.Option) func(context.Context, string) (string, error) {
	return func(ctx context.Context, text string) (string, error) {
		return provider.Generate(ctx, text, opts...)
	}
}
