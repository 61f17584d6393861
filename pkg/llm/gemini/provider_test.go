package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"chatrelay-be/pkg/llm"
)

type fakeModel struct {
	replies map[string]string
	calls   []string
	prompts []string
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}
	f.calls = append(f.calls, opts.Model)
	for _, m := range messages {
		for _, p := range m.Parts {
			if tp, ok := p.(llms.TextContent); ok {
				f.prompts = append(f.prompts, tp.Text)
			}
		}
	}

	reply, ok := f.replies[opts.Model]
	if !ok {
		return nil, errors.New("model not available")
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestGeminiProvider_Generate(t *testing.T) {
	fake := &fakeModel{replies: map[string]string{"gemini-pro": "from pro", "gemini-1.5-flash": ""}}
	p := NewWithModel(fake, "")

	reply, err := p.Generate(context.Background(), "hello", llm.WithModel("gemini-pro"))
	require.NoError(t, err)
	assert.Equal(t, "from pro", reply)

	_, err = p.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)

	_, err = p.Generate(context.Background(), "hello", llm.WithModel("gemini-ultra"))
	assert.Error(t, err)

	assert.Equal(t, []string{"gemini-pro", "gemini-1.5-flash", "gemini-ultra"}, fake.calls)
	assert.Equal(t, []string{"hello", "hello", "hello"}, fake.prompts)
}

func TestModelVariants(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		want      []string
	}{
		{"default", "", []string{"gemini-1.5-flash", "gemini-pro", "gemini-1.0-pro"}},
		{"preferred is a fallback", "gemini-pro", []string{"gemini-pro", "gemini-1.5-flash", "gemini-1.0-pro"}},
		{"custom preferred", "gemini-2.0-flash", []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-pro", "gemini-1.0-pro"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModelVariants(tt.preferred))
		})
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), "", "")
	assert.Error(t, err)
}
