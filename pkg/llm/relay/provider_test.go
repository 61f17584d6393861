package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatrelay-be/pkg/llm"
)

func TestRelayProvider_Generate(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{"success", http.StatusOK, `{"success":true,"response":"Hello there"}`, "Hello there", false},
		{"success false", http.StatusOK, `{"success":false,"response":"ignored"}`, "", true},
		{"empty response", http.StatusOK, `{"success":true,"response":"  "}`, "", true},
		{"server error", http.StatusInternalServerError, `{"success":true,"response":"x"}`, "", true},
		{"malformed body", http.StatusOK, `not json`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got relayRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewRelayProvider(srv.URL, time.Second)
			reply, err := p.Generate(context.Background(), "hi")

			assert.Equal(t, "hi", got.Message)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, reply)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestRelayProvider_EmptyResponseSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"response":""}`))
	}))
	defer srv.Close()

	_, err := NewRelayProvider(srv.URL, time.Second).Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestRelayProvider_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := NewRelayProvider(srv.URL, 50*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), "slow")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNewRelayProvider_Defaults(t *testing.T) {
	p := NewRelayProvider("", 0)
	assert.Equal(t, DefaultURL, p.URL)
	assert.Equal(t, DefaultTimeout, p.Timeout)
}
