// Package relay talks to the hosted chatbot endpoint that fronts the primary model.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chatrelay-be/pkg/llm"
)

const (
	DefaultURL     = "https://r-chatbot.vercel.app/chatbot"
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

type RelayProvider struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

var _ llm.LLMProvider = &RelayProvider{}

func NewRelayProvider(url string, timeout time.Duration) *RelayProvider {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RelayProvider{
		URL:     url,
		Timeout: timeout,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

type relayRequest struct {
	Message string `json:"message"`
}

type relayResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// Generate posts the prompt and returns the reply. A reply counts only when the
// endpoint answers 2xx with success=true and a non-empty response.
func (r *RelayProvider) Generate(ctx context.Context, prompt string, _ ...llm.Option) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	payloadBytes, err := json.Marshal(relayRequest{Message: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("relay error: status %d", resp.StatusCode)
	}

	var relayResp relayResponse
	if err := json.Unmarshal(bodyBytes, &relayResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if !relayResp.Success {
		return "", fmt.Errorf("relay reported failure")
	}
	if strings.TrimSpace(relayResp.Response) == "" {
		return "", llm.ErrEmptyResponse
	}

	return relayResp.Response, nil
}
