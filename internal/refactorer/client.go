// Package refactorer реализует клиент внешнего движка рефакторинга,
// говорящего по протоколу chat-completions.
package refactorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/refactor-hub/internal/config"
)

const systemPrompt = "You are an expert React developer."

const promptHeader = "Refactor this React code to use modern best practices:\n" +
	"- Convert class components to functional components with hooks\n" +
	"- Simplify props/state\n" +
	"- Split large components where sensible\n\n"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type CompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type Client struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// New создаёт клиент движка рефакторинга
func New(cfg config.Refactorer) *Client {
	return &Client{
		apiURL:     cfg.APIURLRefactorer,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.TimeoutRefactorer},
	}
}

// Refactor отправляет исходный код файла движку и возвращает результат.
func (c *Client) Refactor(ctx context.Context, path string, source string) (string, error) {
	const op = "refactorer.Refactor"

	reqBody := CompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: promptHeader + source},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat/completions", &buf)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", op, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %s: unexpected status: %s", op, path, resp.Status)
	}

	var completion CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", op, errors.New("empty choices in response"))
	}

	result := strings.TrimSpace(completion.Choices[0].Message.Content)
	if result == "" {
		return "", fmt.Errorf("%s: %w", op, errors.New("empty completion"))
	}
	return result, nil
}
