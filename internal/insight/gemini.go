package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// contentGenerator is the part of *genai.Models the advisor needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAdvisor asks a Gemini model for advice on a request.
type GeminiAdvisor struct {
	models contentGenerator
	model  string
}

// NewGeminiAdvisor creates a GeminiAdvisor talking to the Gemini API.
func NewGeminiAdvisor(ctx context.Context, apiKey, model string) (*GeminiAdvisor, error) {
	if apiKey == "" {
		return nil, errors.New("gemini advisor: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini advisor: create genai client: %w", err)
	}
	return newGeminiAdvisor(client.Models, model), nil
}

func newGeminiAdvisor(models contentGenerator, model string) *GeminiAdvisor {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiAdvisor{models: models, model: model}
}

// Advise implements Advisor.
func (a *GeminiAdvisor) Advise(ctx context.Context, req Request) (*Response, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	resp, err := a.models.GenerateContent(ctx, a.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini advisor: generate content: %w", err)
	}

	raw := resp.Text()
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var out Response
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("gemini advisor: unmarshal JSON: %w\nraw response: %s", err, raw)
	}
	return &out, nil
}

func buildPrompt(req Request) (string, error) {
	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", fmt.Errorf("gemini advisor: marshal request: %w", err)
	}
	return "You are a personal finance assistant reviewing one month of bank statement data.\n\n" +
		"Input (JSON):\n" + string(data) + "\n\n" +
		"Task:\n" +
		"- Give short, practical advice on the spending pattern.\n" +
		"- Predict next month's spending in one or two sentences.\n\n" +
		"Return ONLY a JSON object with these fields:\n" +
		"- \"status\": \"success\"\n" +
		"- \"advice\": string\n" +
		"- \"prediction\": string\n" +
		"Do NOT wrap the response in code fences.\n", nil
}

// cleanModelJSON strips Markdown fences and any text around the outermost
// JSON object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}
		s = strings.TrimSpace(s[idx+1:])
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
