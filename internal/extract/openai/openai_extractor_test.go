package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/extract"
	openai "invoicegen/internal/extract/openai"
	"invoicegen/internal/port"
)

func testCompany() *domain.CompanyProfile {
	return &domain.CompanyProfile{
		Name:  "Globel Interiors India",
		GSTIN: "07AWXPS9168G1ZG",
		State: "Delhi",
	}
}

func testStates() *domain.StateRegistry {
	return domain.NewStateRegistry([]domain.StateEntry{
		{Name: "Delhi", Code: "07"},
		{Name: "Punjab", Code: "03"},
		{Name: "Uttar Pradesh", Code: "09"},
	})
}

func newTestExtractor(serverURL string) *openai.Extractor {
	cfg := &config.ExtractConfig{
		APIKey:      "test-openai-key",
		Model:       "gpt-4o",
		TimeoutSecs: 30,
	}
	return openai.NewExtractorWithEndpoint(cfg, testCompany(), testStates(), serverURL)
}

func successResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

const sampleDocJSON = `{
  "document_type": "purchase_order",
  "po": "PO-1042",
  "invoice_date": "15/08/2026",
  "billing": {"name": "Star Dental", "address": "Ludhiana", "gstin": "03ABCDE1234F1Z5", "state": "PB-03", "state_code": ""},
  "shipping": {"name": "Star Dental", "address": "Ludhiana", "gstin": "03ABCDE1234F1Z5", "state": "Punjab", "state_code": "03"},
  "products": [{"name": "Reception Desk", "hsn_code": "44079990", "quantity": 1, "rate": 45000}],
  "packing_charges": 1500,
  "extraction_confidence": "high",
  "notes": ""
}`

func TestExtract_PDF_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-4o", reqBody["model"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 2)

		system := messages[0].(map[string]interface{})
		assert.Equal(t, "system", system["role"])
		// The supplier's identity guards against self-extraction.
		assert.Contains(t, system["content"], "Globel Interiors India")
		assert.Contains(t, system["content"], "07AWXPS9168G1ZG")

		user := messages[1].(map[string]interface{})
		content := user["content"].([]interface{})
		assert.Len(t, content, 2)
		fileBlock := content[0].(map[string]interface{})
		assert.Equal(t, "file", fileBlock["type"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse(sampleDocJSON))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	doc, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4 test content"),
		ContentType: "application/pdf",
	})

	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "purchase_order", doc.DocumentType)
	assert.Equal(t, "PO-1042", doc.PO)
	require.Len(t, doc.Products, 1)
	assert.Equal(t, "Reception Desk", doc.Products[0].Name)

	// "PB-03" was repaired to the canonical name and code.
	assert.Equal(t, "Punjab", doc.Billing.State)
	assert.Equal(t, "03", doc.Billing.StateCode)
}

func TestExtract_Image_JPEG_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			return
		}

		messages := reqBody["messages"].([]interface{})
		user := messages[1].(map[string]interface{})
		content := user["content"].([]interface{})
		imgBlock := content[0].(map[string]interface{})
		assert.Equal(t, "image_url", imgBlock["type"])
		imgURL := imgBlock["image_url"].(map[string]interface{})
		assert.Contains(t, imgURL["url"], "data:image/jpeg;base64,")
		assert.Equal(t, "high", imgURL["detail"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse(sampleDocJSON))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	doc, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte{0xFF, 0xD8, 0xFF, 0xE0},
		ContentType: "image/jpeg",
	})

	assert.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestExtract_CodeFencedOutput(t *testing.T) {
	fenced := "```json\n" + sampleDocJSON + "\n```"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse(fenced))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	doc, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, "PO-1042", doc.PO)
}

func TestExtract_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit exceeded","type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	doc, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})

	assert.Nil(t, doc)
	require.Error(t, err)

	var rlErr *extract.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "openai", rlErr.Provider)
	assert.Equal(t, 30*1e9, float64(rlErr.RetryAfter))
	assert.Contains(t, rlErr.Err.Error(), "openai API error (status 429)")
}

func TestExtract_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"Internal server error","type":"server_error"}}`))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	doc, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})

	assert.Nil(t, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai API error (status 500)")

	var rlErr *extract.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestExtract_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []map[string]interface{}{}})
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	doc, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})

	assert.Nil(t, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestExtract_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse("This is not JSON at all, sorry!"))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	doc, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})

	assert.Nil(t, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing model JSON output")
}

func TestExtract_TruncatedOutput(t *testing.T) {
	resp := successResponse(`{"po": "PO-`)
	resp["choices"].([]map[string]interface{})[0]["finish_reason"] = "length"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	doc, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})

	assert.Nil(t, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finish_reason: length")
}

func TestExtract_UnsupportedContentType(t *testing.T) {
	e := newTestExtractor("http://unused")

	doc, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("text content"),
		ContentType: "text/plain",
	})

	assert.Nil(t, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}
