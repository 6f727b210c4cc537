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

	"github.com/sirupsen/logrus"

	"github.com/grovetools/onair/config"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/logging"
)

// TitlePrompt frames a name as a lower-third title request.
func TitlePrompt(name string) string {
	return fmt.Sprintf("Generate a short, professional title for a lower third for this person or entity: %q. "+
		"For example, for 'Satya Nadella', you could return 'CEO of Microsoft'. Be concise and professional. "+
		"If it's a generic term, provide a relevant description. Example: for 'Local Weather', return '5-Day Forecast'. "+
		"Return only the title text, without any labels or quotes.", name)
}

// HTTPGenerator calls an OpenAI compatible responses endpoint.
type HTTPGenerator struct {
	Endpoint string
	Model    string
	APIKey   string
	Client   *http.Client
	logger   *logrus.Entry
}

// NewTextGenerator returns an HTTP generator for cfg, or a generator that
// always fails when no endpoint is configured.
func NewTextGenerator(cfg config.AIConfig) TextGenerator {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return Static{}
	}
	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPGenerator{
		Endpoint: cfg.Endpoint,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		Client:   &http.Client{Timeout: timeout},
		logger:   logging.NewLogger("textgen"),
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) string {
	text, err := g.invoke(ctx, prompt)
	if err != nil {
		if g.logger != nil {
			g.logger.WithError(oaerrors.ExternalService("text generation", err)).Warn("Generation failed")
		}
		return GenerateFailedText
	}
	return text
}

func (g *HTTPGenerator) invoke(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}
	body, err := json.Marshal(map[string]any{
		"model": g.Model,
		"input": prompt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.APIKey)
	}

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var payload struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if text := strings.TrimSpace(payload.OutputText); text != "" {
		return text, nil
	}
	for _, item := range payload.Output {
		for _, c := range item.Content {
			if text := strings.TrimSpace(c.Text); text != "" {
				return text, nil
			}
		}
	}
	return "", fmt.Errorf("response has no output text")
}

// Static answers every prompt with Text, or from Answers when the prompt is
// listed there. An empty Static behaves like a failing generator.
type Static struct {
	Text    string
	Answers map[string]string
}

func (s Static) Generate(_ context.Context, prompt string) string {
	if a, ok := s.Answers[prompt]; ok {
		return a
	}
	if s.Text == "" {
		return GenerateFailedText
	}
	return s.Text
}
