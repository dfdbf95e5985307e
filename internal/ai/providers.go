package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const claudeEndpoint = "https://api.anthropic.com/v1/messages"

// claudeProvider calls the Anthropic messages API directly.
type claudeProvider struct {
	httpClient *http.Client
	apiKey     string
	model      string
	maxTokens  int
	temp       float64
}

func newClaudeProvider(cfg Config) *claudeProvider {
	return &claudeProvider{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.ClaudeAPIKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		temp:       cfg.Temperature,
	}
}

func (p *claudeProvider) Name() string { return "claude" }

func (p *claudeProvider) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := map[string]interface{}{
		"model":       p.model,
		"max_tokens":  p.maxTokens,
		"temperature": p.temp,
		"system":      system,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]string{
					{"type": "text", "text": user},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeEndpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("claude API error %d: %s", resp.StatusCode, string(body))
	}

	var claudeResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return "", err
	}

	var content string
	for _, part := range claudeResp.Content {
		if part.Type == "text" {
			content += part.Text
		}
	}
	return content, nil
}

// openaiProvider calls the chat completions API through the go-openai SDK.
type openaiProvider struct {
	client    *openai.Client
	model     string
	maxTokens int
	temp      float32
}

func newOpenAIProvider(cfg Config) *openaiProvider {
	return &openaiProvider{
		client:    openai.NewClient(cfg.OpenAIAPIKey),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		temp:      float32(cfg.Temperature),
	}
}

func (p *openaiProvider) Name() string { return "openai" }

func (p *openaiProvider) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   p.maxTokens,
		Temperature: p.temp,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
