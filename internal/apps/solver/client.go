package solver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/edupadihq/edupadi-backend/internal/config"
)

const tutorPrompt = `You are a helpful tutor for a Nigerian student.
Solve the question strictly in numbered steps, then state the final answer on its own line.
Keep the language simple enough for a secondary school student.`

// HTTPProvider calls OpenAI-compatible chat completion endpoints:
// Gemini first, DeepSeek as fallback when it is configured.
type HTTPProvider struct {
	cfg    *config.Config
	client *http.Client
}

func NewHTTPProvider(cfg *config.Config) *HTTPProvider {
	timeout := cfg.AITimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &HTTPProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Solve(question string) (Answer, error) {
	text, err := p.callProvider(p.cfg.GeminiAPIURL, p.cfg.GeminiAPIKey, p.cfg.GeminiModel, question)
	if err == nil {
		return Answer{Text: text, Model: p.cfg.GeminiModel}, nil
	}
	slog.Warn("Gemini failed, trying DeepSeek", "error", err)

	if p.cfg.DeepSeekAPIKey != "" {
		text, err = p.callProvider(p.cfg.DeepSeekAPIURL, p.cfg.DeepSeekAPIKey, p.cfg.DeepSeekModel, question)
		if err == nil {
			return Answer{Text: text, Model: p.cfg.DeepSeekModel}, nil
		}
		slog.Warn("DeepSeek also failed", "error", err)
	}

	return Answer{}, fmt.Errorf("all AI providers failed: %w", err)
}

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *HTTPProvider) callProvider(apiURL, apiKey, model, question string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	reqBody, err := json.Marshal(llmRequest{
		Model: model,
		Messages: []llmMessage{
			{Role: "system", Content: tutorPrompt},
			{Role: "user", Content: question},
		},
		Temperature: 0.3,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))
	}

	var llmResp llmResponse
	if err := json.Unmarshal(body, &llmResp); err != nil {
		return "", err
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	content := strings.TrimSpace(llmResp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("blank answer from API")
	}
	return content, nil
}
