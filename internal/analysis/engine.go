// Package analysis sends normalized email text to a language model
// with a strict five-field JSON contract and reconciles whatever comes
// back into an always-fully-populated AnalysisRecord.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/email-insights/internal/model"
)

const (
	defaultModel       = "gpt-4.1-mini"
	defaultTemperature = 0.35
	defaultMaxTokens   = 1024
	defaultAPIURL      = "https://api.openai.com/v1/chat/completions"
)

// EmptyContentSummary is returned when there is nothing to analyze.
const EmptyContentSummary = "(No email content to summarize)"

// Config holds the engine settings. Zero values fall back to defaults.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int

	// BaseURL overrides the completion endpoint, used by tests.
	BaseURL string
}

// Engine calls the completion API and parses its output. All failure
// modes are absorbed: Analyze never panics and never returns an error,
// only a degraded record whose summary names the failure.
type Engine struct {
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	baseURL     string
	client      *http.Client
}

// New creates an analysis engine with the given configuration.
func New(cfg Config) *Engine {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAPIURL
	}

	return &Engine{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		baseURL:     cfg.BaseURL,
		client:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Analyze runs one message body through the model. Empty input returns
// the default record immediately without a remote call. Any network,
// auth, or parse failure is converted into a default record whose
// summary embeds the failure, never an error: analysis failure for one
// message must not abort the batch.
func (e *Engine) Analyze(ctx context.Context, text string) model.AnalysisRecord {
	record := model.DefaultAnalysisRecord()

	if strings.TrimSpace(text) == "" {
		record.Summary = EmptyContentSummary
		return record
	}

	output, err := e.complete(ctx, buildPrompt(text))
	if err != nil {
		record.Summary = fmt.Sprintf("(AI summarization failed: %v)", err)
		return record
	}

	return mergeResponse(record, output)
}

// buildPrompt wraps the email text in the fixed instruction mandating
// a single JSON object with exactly the five schema fields.
func buildPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("You are an intelligent email assistant. ")
	sb.WriteString("Analyze the following email and respond with a single ")
	sb.WriteString("JSON object containing exactly these fields:\n")
	sb.WriteString(`- "summary": a 2-3 sentence summary` + "\n")
	sb.WriteString(`- "actions": a list of action items (empty list if none)` + "\n")
	sb.WriteString(`- "tone": one of "formal", "informal", "neutral", "urgent"` + "\n")
	sb.WriteString(`- "priority": one of "Critical", "Important", "Normal"` + "\n")
	sb.WriteString(`- "category": one of "action_required", "info", "event", "spam", "newsletter"` + "\n")
	sb.WriteString("Respond with the JSON object only, no other text.\n\n")
	sb.WriteString("Email content:\n")
	sb.WriteString(text)

	return sb.String()
}

// complete makes a single request to the chat completion API and
// returns the generated text.
func (e *Engine) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := apiRequest{
		Model: e.model,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, e.baseURL, bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return result.Choices[0].Message.Content, nil
}

// --- completion API types ---

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int        `json:"index"`
		Message      apiMessage `json:"message"`
		FinishReason string     `json:"finish_reason"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
