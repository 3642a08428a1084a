package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/adverve/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const copywriterPrompt = `You are an advertising copywriter. Answer with a JSON array only, no prose.
Each element is {"platform": "<platform>", "content": "<ad copy>"} and there is exactly one element per requested platform, in the requested order.
Ad copy is plain text, never HTML or markdown, and never longer than the character limit.`

// LLMGenerator writes ad copy with any OpenAI-compatible chat completions API.
type LLMGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewLLMGenerator expects baseURL to include the /v1 prefix.
func NewLLMGenerator(baseURL, apiKey, model string, log *zap.Logger) *LLMGenerator {
	return &LLMGenerator{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		model:   strings.TrimSpace(model),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		log: log,
	}
}

func (g *LLMGenerator) Generate(ctx context.Context, req models.GenerationRequest) ([]models.AdCopyVariant, error) {
	if g.model == "" {
		return nil, fmt.Errorf("llm model required")
	}

	text, err := g.complete(ctx, copywriterPrompt, buildUserPrompt(req))
	if err != nil {
		return nil, err
	}

	variants, err := parseVariants(text, req.CharLimit)
	if err != nil {
		g.log.Warn("unusable llm output", zap.Error(err), zap.Int("length", len(text)))
		return nil, err
	}
	return variants, nil
}

func buildUserPrompt(req models.GenerationRequest) string {
	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = models.AllPlatforms
	}
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}

	var features []string
	for _, f := range req.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n", req.ProductName)
	fmt.Fprintf(&b, "Description: %s\n", req.Description)
	if len(features) > 0 {
		fmt.Fprintf(&b, "Key features: %s\n", strings.Join(features, "; "))
	}
	fmt.Fprintf(&b, "Target audience: %s\n", req.Audience)
	fmt.Fprintf(&b, "Tone: %s\n", req.Tone)
	fmt.Fprintf(&b, "Platforms: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Character limit: %d\n", req.CharLimit)
	return b.String()
}

func (g *LLMGenerator) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp chatErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error.Message != "" {
			return "", fmt.Errorf("llm api error: %s", errResp.Error.Message)
		}
		return "", fmt.Errorf("llm api error: %s", resp.Status)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("llm decode: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from llm api")
	}
	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty response from llm api")
	}
	return text, nil
}

type llmVariant struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

// parseVariants reads the model's JSON array, tolerating a fenced code block.
// Content is flattened to plain text and cut to charLimit runes.
func parseVariants(text string, charLimit int) ([]models.AdCopyVariant, error) {
	text = stripCodeFence(text)

	var raw []llmVariant
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("llm output is not a JSON array: %w", err)
	}

	out := make([]models.AdCopyVariant, 0, len(raw))
	for _, r := range raw {
		content, err := plainText(r.Content)
		if err != nil {
			return nil, err
		}
		if content == "" {
			continue
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, models.AdCopyVariant{
			ID:       id,
			Platform: models.Platform(strings.TrimSpace(r.Platform)),
			Content:  truncateRunes(content, charLimit),
		})
	}
	return out, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // language tag
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// plainText drops any markup the model produced.
func plainText(s string) (string, error) {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s), nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("parse llm markup: %w", err)
	}
	doc.Find("br").ReplaceWithHtml("\n")
	return strings.TrimSpace(doc.Text()), nil
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
