// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matt-FFFFFF/sweep/internal/ctxlog"
)

var _ Gateway = (*openAIBackend)(nil)

// openAIBackend talks to an OpenAI-compatible local inference endpoint,
// such as LM Studio or Ollama.
type openAIBackend struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func newOpenAIBackend(cfg Config) *openAIBackend {
	return &openAIBackend{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type modelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ListModels implements Gateway.
func (b *openAIBackend) ListModels(ctx context.Context) []string {
	var list modelList
	if err := b.get(ctx, "/v1/models", &list); err != nil {
		ctxlog.Error(ctx, "model discovery failed", "baseURL", b.baseURL, "error", err.Error())
		return nil
	}

	models := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		models = append(models, m.ID)
	}

	return models
}

// Send implements Gateway.
func (b *openAIBackend) Send(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		b.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	b.setHeaders(httpReq)

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrBackend, backendMessage(resp.StatusCode, respBody))
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrBackend, err)
	}

	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contained no choices", ErrBackend)
	}

	out := &Response{
		Content: chat.Choices[0].Message.Content,
		Model:   chat.Model,
	}

	if out.Model == "" {
		out.Model = req.Model
	}

	if chat.Usage != nil {
		out.Usage = &Usage{
			Prompt:     chat.Usage.PromptTokens,
			Completion: chat.Usage.CompletionTokens,
			Total:      chat.Usage.TotalTokens,
		}
	}

	return out, nil
}

// TestConnection implements Gateway.
func (b *openAIBackend) TestConnection(ctx context.Context) bool {
	var list modelList

	return b.get(ctx, "/v1/models", &list) == nil
}

func (b *openAIBackend) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return err
	}

	b.setHeaders(req)

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s", backendMessage(resp.StatusCode, body))
	}

	return json.Unmarshal(body, v)
}

func (b *openAIBackend) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")

	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}
}

// backendMessage extracts the backend-provided error message when available,
// falling back to the HTTP status and raw body.
func backendMessage(status int, body []byte) string {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}

	return fmt.Sprintf("status %d: %s", status, strings.TrimSpace(string(body)))
}
