package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"microblog/internal/model"
)

// TranslateClient calls an external machine-translation HTTP API
// (LibreTranslate-compatible: POST /translate with q/source/target).
//
// The client does no retrying and no caching; it only adds what the caller
// needs to stay sane: a hard timeout and typed errors, so "service is down"
// and "here is your translation" can never share a field.
type TranslateClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

const translateTimeout = 10 * time.Second

// NewTranslateClient creates a translation client. An empty endpoint leaves
// the client unconfigured; calls then fail fast with
// model.ErrTranslationNotConfigured.
func NewTranslateClient(endpoint, apiKey string) *TranslateClient {
	return &TranslateClient{
		httpClient: &http.Client{
			Timeout: translateTimeout,
		},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

type translateRequest struct {
	Query  string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate sends the text to the remote translator and returns the
// translated text, or a typed error when the service is unconfigured,
// unreachable or answers nonsense.
func (c *TranslateClient) Translate(ctx context.Context, req *model.TranslationRequest) (*model.TranslationResult, error) {
	if c.endpoint == "" {
		return nil, model.ErrTranslationNotConfigured
	}

	payload, err := json.Marshal(translateRequest{
		Query:  req.Text,
		Source: req.SourceLang,
		Target: req.DestLang,
		APIKey: c.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create translate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("[Translate] request FAILED: source=%s dest=%s err=%v", req.SourceLang, req.DestLang, err)
		return nil, fmt.Errorf("%w: %v", model.ErrTranslationUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", model.ErrTranslationUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Translate] upstream error: status=%d body=%s", resp.StatusCode, respBody)
		return nil, fmt.Errorf("%w: status %d", model.ErrTranslationUnavailable, resp.StatusCode)
	}

	var parsed translateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrTranslationMalformed, err)
	}
	if parsed.TranslatedText == "" {
		return nil, model.ErrTranslationMalformed
	}

	return &model.TranslationResult{Text: parsed.TranslatedText}, nil
}
