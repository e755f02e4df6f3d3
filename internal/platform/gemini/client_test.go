package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/studyplanner-backend/internal/observability"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
)

func testSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{"type": "string"},
		},
		"required": []string{"answer"},
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), logger.Nop(), Config{APIKey: "  "}, nil)
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateJSONSendsSchemaAndReturnsText(t *testing.T) {
	var calls atomic.Int32
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent") {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("x-goog-api-key") != "k-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"answer\":\"42\"}"}]}}],
			"usageMetadata": {"promptTokenCount": 11, "candidatesTokenCount": 7}
		}`)
	}))
	defer srv.Close()

	m := observability.New()
	c, err := NewClient(context.Background(), logger.Nop(), Config{
		APIKey:     "k-123",
		Model:      "test-model",
		BaseURL:    srv.URL + "/",
		HTTPClient: srv.Client(),
	}, m)
	require.NoError(t, err)
	assert.Equal(t, "test-model", c.Model())

	out, err := c.GenerateJSON(context.Background(), "be terse", "what is it?", "answer", testSchema())
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"42"}`, string(out))
	assert.EqualValues(t, 1, calls.Load())

	gen, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", gotBody)
	assert.Equal(t, "application/json", gen["responseMimeType"])
	assert.NotNil(t, gen["responseSchema"])
	assert.NotNil(t, gotBody["systemInstruction"])

	var sb strings.Builder
	require.NoError(t, m.WritePrometheus(&sb))
	assert.Contains(t, sb.String(), `sp_llm_requests_total{model="test-model",status="ok"} 1`)
}

func TestGenerateJSONPropagatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error": {"code": 400, "message": "bad request", "status": "INVALID_ARGUMENT"}}`)
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), logger.Nop(), Config{
		APIKey:     "k",
		Model:      "test-model",
		BaseURL:    srv.URL + "/",
		HTTPClient: srv.Client(),
	}, nil)
	require.NoError(t, err)

	out, err := c.GenerateJSON(context.Background(), "", "hi", "answer", testSchema())
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, "400", statusLabel(err))
}

func TestGenerateJSONRejectsNilSchema(t *testing.T) {
	c := &client{log: logger.Nop(), model: "m"}
	_, err := c.GenerateJSON(context.Background(), "", "hi", "x", nil)
	require.Error(t, err)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "timeout", statusLabel(context.DeadlineExceeded))
	assert.Equal(t, "canceled", statusLabel(context.Canceled))
	assert.Equal(t, "error", statusLabel(errors.New("boom")))
}
