package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"default", "", []string{"relay", "gemini"}, false},
		{"reversed", "gemini, relay", []string{"gemini", "relay"}, false},
		{"single", "RELAY", []string{"relay"}, false},
		{"unknown", "relay,openai", nil, true},
		{"duplicate", "relay,relay", nil, true},
		{"only commas", ",,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrder(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildChain(t *testing.T) {
	p := Providers{
		Relay:        &stubProvider{},
		Gemini:       &stubProvider{},
		GeminiModels: []string{"gemini-1.5-flash", "gemini-pro"},
	}

	attempts, err := BuildChain([]string{"gemini", "relay"}, p)
	require.NoError(t, err)
	assert.Equal(t, []string{"gemini:gemini-1.5-flash", "gemini:gemini-pro", "relay"},
		New(nil, attempts...).Names())

	attempts, err = BuildChain([]string{"relay", "gemini"}, Providers{Relay: &stubProvider{}})
	require.NoError(t, err)
	assert.Len(t, attempts, 1)

	_, err = BuildChain([]string{"bogus"}, p)
	assert.Error(t, err)
}
