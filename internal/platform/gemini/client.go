package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/yungbote/studyplanner-backend/internal/observability"
	"github.com/yungbote/studyplanner-backend/internal/platform/ctxutil"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
)

const DefaultModel = "gemini-2.5-flash"

var (
	ErrMissingAPIKey = errors.New("missing Gemini API key")
	ErrEmptyResponse = errors.New("gemini returned no text")
)

// Client is the Gemini API surface used by the rest of the backend.
type Client interface {
	// GenerateJSON asks for output conforming to schema and returns the raw JSON text
	// without decoding it.
	GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) ([]byte, error)
	Model() string
}

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL    string
	HTTPClient *http.Client
}

type client struct {
	log     *logger.Logger
	genai   *genai.Client
	model   string
	metrics *observability.Metrics
}

func NewClient(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &client{
		log:     log.With("client", "gemini", "model", model),
		genai:   gc,
		model:   model,
		metrics: metrics,
	}, nil
}

func (c *client) Model() string { return c.model }

func (c *client) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) ([]byte, error) {
	if schema == nil {
		return nil, errors.New("schema required")
	}
	responseSchema, err := ToSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("convert schema %s: %w", schemaName, err)
	}

	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "gemini.GenerateContent",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("gemini.model", c.model),
			attribute.String("gemini.schema", schemaName),
			attribute.Int("gemini.prompt_chars", len(system)+len(user)),
		),
	)
	defer span.End()

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	}
	if strings.TrimSpace(system) != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(user), cfg)
	latency := time.Since(start)
	if err != nil {
		status := statusLabel(err)
		c.metrics.ObserveLLMRequest(c.model, status, latency, 0, 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		c.log.Warn("gemini request failed", append(ctxutil.LogFields(ctx), "status", status, "latency_ms", latency.Milliseconds(), "error", err)...)
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	var inTok, outTok int
	if resp.UsageMetadata != nil {
		inTok = int(resp.UsageMetadata.PromptTokenCount)
		outTok = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		c.metrics.ObserveLLMRequest(c.model, "empty", latency, inTok, outTok)
		span.SetStatus(codes.Error, "empty")
		return nil, ErrEmptyResponse
	}
	c.metrics.ObserveLLMRequest(c.model, "ok", latency, inTok, outTok)
	span.SetAttributes(
		attribute.Int("gemini.input_tokens", inTok),
		attribute.Int("gemini.output_tokens", outTok),
	)
	c.log.Debug("gemini request complete", append(ctxutil.LogFields(ctx),
		"latency_ms", latency.Milliseconds(),
		"input_tok_count", inTok,
		"output_tok_count", outTok,
	)...)
	return []byte(text), nil
}

func statusLabel(err error) string {
	var apiErr genai.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Code != 0:
		return strconv.Itoa(apiErr.Code)
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
