package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adverve/backend/internal/models"
	"github.com/adverve/backend/internal/workspace"
	"go.uber.org/zap"
)

// GenerationClient calls a remote text-generation service.
type GenerationClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewGenerationClient(baseURL string, log *zap.Logger) *GenerationClient {
	return &GenerationClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log,
	}
}

type generateResponse struct {
	Variants []models.AdCopyVariant `json:"variants"`
}

// Generate posts the campaign inputs and returns the variants in service order.
// The calling session's token is forwarded as a bearer token.
func (c *GenerationClient) Generate(ctx context.Context, req models.GenerationRequest) ([]models.AdCopyVariant, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/v1/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if sess, ok := workspace.SessionFromContext(ctx); ok && sess.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation service unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("generation service error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("generation service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	return result.Variants, nil
}
