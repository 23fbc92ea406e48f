package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/config"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// rejectMarker is the literal token the classifier is instructed to emit
// for messages that must not be delivered.
const rejectMarker = "REJECT"

// systemInstruction biases the classifier strongly toward allowing.
// Only clearly abusive content should be rejected.
const systemInstruction = `You are a content screener for an anonymous gratitude message service.
People use it to thank someone from their past. Almost every message is legitimate and should pass.

Respond with exactly one word.
Respond "REJECT" only if the message contains a clear threat, harassment, explicit sexual content, spam, or hate speech.
Otherwise respond "ALLOW". When in doubt, respond "ALLOW".`

// GeminiClassifier calls the Gemini generateContent API for a short,
// deterministic verdict.
type GeminiClassifier struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiClassifier creates a new GeminiClassifier from config.
func NewGeminiClassifier(cfg config.ModerationConfig) *GeminiClassifier {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &GeminiClassifier{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type geminiRequest struct {
	SystemInstruction geminiContent    `json:"system_instruction"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Classify submits the message text and maps the completion to a verdict.
// A completion containing the rejection marker means deny; any other
// non-empty completion means allow. Transport failures, non-200 statuses
// and unparseable or empty bodies are returned as errors so the caller
// can apply its fail policy.
func (g *GeminiClassifier) Classify(ctx context.Context, message string) (Verdict, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	payload := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: message}}}},
		GenerationConfig: generationConfig{
			Temperature:     0,
			MaxOutputTokens: 8,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return VerdictAllow, fmt.Errorf("failed to marshal classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return VerdictAllow, fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return VerdictAllow, fmt.Errorf("classifier call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return VerdictAllow, fmt.Errorf("failed to read classifier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return VerdictAllow, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return VerdictAllow, fmt.Errorf("failed to parse classifier response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return VerdictAllow, fmt.Errorf("classifier returned no candidates")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return VerdictAllow, fmt.Errorf("classifier returned an empty verdict")
	}

	if strings.Contains(strings.ToUpper(text), rejectMarker) {
		return VerdictDeny, nil
	}
	return VerdictAllow, nil
}
