package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/takerupon/ai-ocr-test/internal/config"
	"github.com/takerupon/ai-ocr-test/internal/domain"
	"github.com/takerupon/ai-ocr-test/internal/extract"
	"github.com/takerupon/ai-ocr-test/internal/port"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	// demoDelay keeps the caller's loading indicator visible when no API
	// key is configured and the canned record is returned instead.
	demoDelay = 1500 * time.Millisecond
)

// harmCategories that get content-safety filtering disabled. Purchase orders
// are trusted business documents, not user-generated content.
var harmCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// Client implements port.OrderExtractor using Google's Gemini API.
type Client struct {
	apiKey          string
	model           string
	endpoint        string
	maxOutputTokens int
	demoMode        bool
	httpClient      *http.Client
}

// NewClient creates a Gemini-based order extractor. When the config carries
// no usable API key the client runs in demo mode and never touches the
// network.
func NewClient(cfg *config.GeminiConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.GeminiConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.GeminiConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-pro"
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Client{
		apiKey:          cfg.APIKey,
		model:           model,
		endpoint:        endpoint,
		maxOutputTokens: maxTokens,
		demoMode:        !cfg.Configured(),
		httpClient:      &http.Client{Timeout: timeout},
	}
}

// DemoMode reports whether the client returns canned data instead of calling
// the API.
func (c *Client) DemoMode() bool {
	return c.demoMode
}

// Extract sends the document to Gemini and normalizes the reply into an
// OrderData. In demo mode it waits a fixed delay and returns the canned
// record; this path never fails. A live call that reaches the service but
// replies with something unparseable also falls back to the canned record,
// while transport and API errors are returned to the caller.
func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (*domain.OrderData, error) {
	if c.demoMode {
		log.Printf("gemini.Extract: no API key configured, returning demo data for %q", input.FileName)
		select {
		case <-time.After(demoDelay):
		case <-ctx.Done():
		}
		return extract.DemoOrder(), nil
	}

	if _, ok := domain.AllowedContentTypes[input.ContentType]; !ok {
		return nil, fmt.Errorf("unsupported content type for extraction: %s", input.ContentType)
	}

	encoded := base64.StdEncoding.EncodeToString(input.FileBytes)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{
						"text": extract.BuildOrderPrompt(),
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": input.ContentType,
							"data":      encoded,
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.1,
			"maxOutputTokens": c.maxOutputTokens,
		},
		"safetySettings": safetySettings(),
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling gemini API: %v", domain.ErrExtractionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrExtractionFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gemini API error (status %d): %s", domain.ErrExtractionFailed, resp.StatusCode, string(respBody))
	}

	text, err := candidateText(respBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	return c.normalizeText(text), nil
}

// normalizeText turns the model's reply into an OrderData. Malformed output
// is substituted with the demo record rather than surfaced as an error, so a
// successful service call always yields a displayable result.
func (c *Client) normalizeText(text string) *domain.OrderData {
	jsonStr, found := extract.ExtractJSONObject(text)
	if !found {
		jsonStr = text
	}
	order, err := extract.UnmarshalOrder([]byte(jsonStr))
	if err != nil {
		log.Printf("gemini.Extract: model output was not valid JSON, returning demo data: %v (raw: %s)", err, truncate(text, 500))
		return extract.DemoOrder()
	}
	return order
}

func safetySettings() []map[string]string {
	settings := make([]map[string]string, 0, len(harmCategories))
	for _, cat := range harmCategories {
		settings = append(settings, map[string]string{
			"category":  cat,
			"threshold": "BLOCK_NONE",
		})
	}
	return settings
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func candidateText(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %v", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from API: no candidates")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from API: no parts")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
