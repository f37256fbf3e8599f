package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/extract"
	"invoicegen/internal/port"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Extractor implements port.DocumentExtractor using the OpenAI Chat
// Completions API with vision input.
type Extractor struct {
	apiKey   string
	model    string
	endpoint string
	company  *domain.CompanyProfile
	states   *domain.StateRegistry
	client   *http.Client
}

// NewExtractor creates an OpenAI-based document extractor.
func NewExtractor(cfg *config.ExtractConfig, company *domain.CompanyProfile, states *domain.StateRegistry) *Extractor {
	return newExtractor(cfg, company, states, apiURL)
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API endpoint (for testing).
func NewExtractorWithEndpoint(cfg *config.ExtractConfig, company *domain.CompanyProfile, states *domain.StateRegistry, endpoint string) *Extractor {
	return newExtractor(cfg, company, states, endpoint)
}

func newExtractor(cfg *config.ExtractConfig, company *domain.CompanyProfile, states *domain.StateRegistry, endpoint string) *Extractor {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Extractor{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		company:  company,
		states:   states,
		client:   &http.Client{Timeout: timeout},
	}
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*domain.ExtractedDocument, error) {
	prompt := extract.BuildExtractionPrompt(e.company)

	contentBlocks, err := buildContentBlocks(input)
	if err != nil {
		return nil, fmt.Errorf("building content blocks: %w", err)
	}

	reqBody := map[string]interface{}{
		"model":       e.model,
		"max_tokens":  2000,
		"temperature": 0.1,
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": prompt,
			},
			{
				"role":    "user",
				"content": contentBlocks,
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := extract.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, extract.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	doc, err := parseResponse(respBody)
	if err != nil {
		return nil, err
	}

	e.normalizeStates(doc)
	return doc, nil
}

func buildContentBlocks(input port.ExtractInput) ([]map[string]interface{}, error) {
	encoded := base64.StdEncoding.EncodeToString(input.FileBytes)
	var blocks []map[string]interface{}

	switch input.ContentType {
	case "application/pdf":
		dataURI := fmt.Sprintf("data:%s;base64,%s", input.ContentType, encoded)
		blocks = append(blocks, map[string]interface{}{
			"type": "file",
			"file": map[string]interface{}{
				"filename":  "document.pdf",
				"file_data": dataURI,
			},
		})
	case "image/jpeg", "image/png":
		dataURI := fmt.Sprintf("data:%s;base64,%s", input.ContentType, encoded)
		blocks = append(blocks, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]interface{}{
				"url":    dataURI,
				"detail": "high",
			},
		})
	default:
		return nil, fmt.Errorf("unsupported content type for extraction: %s", input.ContentType)
	}

	blocks = append(blocks, map[string]interface{}{
		"type": "text",
		"text": "Extract the invoice/PO data from this document:",
	})

	return blocks, nil
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

var codeFence = regexp.MustCompile("^```(?:json)?\\n?|\\n?```$")

func parseResponse(body []byte) (*domain.ExtractedDocument, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	text = codeFence.ReplaceAllString(text, "")

	var doc domain.ExtractedDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("parsing model JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	return &doc, nil
}

// normalizeStates repairs the party state fields in place so the preview can
// match them against the state dropdown.
func (e *Extractor) normalizeStates(doc *domain.ExtractedDocument) {
	for _, p := range []*domain.ExtractedParty{&doc.Billing, &doc.Shipping} {
		if p.State == "" {
			continue
		}
		name, code := extract.NormalizeState(p.State, e.states)
		if name != "" {
			p.State = name
		}
		if code != "" {
			p.StateCode = code
		}
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
