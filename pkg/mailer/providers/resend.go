package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	resendAPIURL     = "https://api.resend.com"
	resendEmailsPath = "/emails"
	resendTimeout    = 10 * time.Second

	providerResend = "resend"
)

var errResendAPIKeyRequired = errors.New("resend API key is required")

// ResendProvider delivers mail through the Resend HTTP API.
type ResendProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

type ResendConfig struct {
	APIKey string
	APIURL string
}

func NewResendProvider(config ResendConfig) *ResendProvider {
	apiURL := config.APIURL
	if apiURL == "" {
		apiURL = resendAPIURL
	}

	return &ResendProvider{
		apiKey: config.APIKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: resendTimeout},
	}
}

func (p *ResendProvider) Name() string {
	return providerResend
}

func (p *ResendProvider) Send(ctx context.Context, data *EmailData) (*EmailResult, error) {
	if p.apiKey == "" {
		return p.failure(errResendAPIKeyRequired.Error()), errResendAPIKeyRequired
	}

	payload := map[string]any{
		"from":    data.From,
		"to":      data.To,
		"subject": data.Subject,
		"html":    data.HTML,
	}
	if data.Text != "" {
		payload["text"] = data.Text
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return p.failure(err.Error()), fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+resendEmailsPath, bytes.NewReader(body))
	if err != nil {
		return p.failure(err.Error()), fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return p.failure(err.Error()), fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("resend returned status %d: %s", resp.StatusCode, respBody)
		return p.failure(err.Error()), err
	}

	var parsed struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(respBody, &parsed)

	return &EmailResult{
		Success:   true,
		MessageID: parsed.ID,
		Provider:  providerResend,
	}, nil
}

func (p *ResendProvider) failure(msg string) *EmailResult {
	return &EmailResult{
		Success:  false,
		Provider: providerResend,
		Error:    msg,
	}
}
