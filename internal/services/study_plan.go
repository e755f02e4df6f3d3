package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/studyplanner-backend/internal/domain/studyplan"
	"github.com/yungbote/studyplanner-backend/internal/learning/prompts"
	"github.com/yungbote/studyplanner-backend/internal/observability"
	"github.com/yungbote/studyplanner-backend/internal/platform/ctxutil"
	"github.com/yungbote/studyplanner-backend/internal/platform/gemini"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
)

type StudyPlanService interface {
	// Generate makes exactly one model call. On failure the error wraps
	// ErrGenerationFailed and no plan is returned.
	Generate(ctx context.Context, c studyplan.PlanConstraints) (*studyplan.StudyPlan, error)
}

type studyPlanService struct {
	log     *logger.Logger
	llm     gemini.Client
	metrics *observability.Metrics
}

func NewStudyPlanService(baseLog *logger.Logger, llm gemini.Client, metrics *observability.Metrics) StudyPlanService {
	return &studyPlanService{
		log:     baseLog.With("service", "StudyPlanService"),
		llm:     llm,
		metrics: metrics,
	}
}

func (s *studyPlanService) Generate(ctx context.Context, c studyplan.PlanConstraints) (*studyplan.StudyPlan, error) {
	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "studyplan.Generate")
	defer span.End()

	p, err := prompts.BuildStudyPlan(c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prompt")
		return nil, fmt.Errorf("%w: build prompt: %w", ErrGenerationFailed, err)
	}
	span.SetAttributes(
		attribute.String("prompt.name", p.Name),
		attribute.Int("prompt.version", p.Version),
		attribute.String("prompt.fingerprint", p.Fingerprint()),
		attribute.Int("constraints.weak_topics", len(c.WeakTopics)),
		attribute.Int("constraints.materials", len(c.MaterialNames)),
	)

	start := time.Now()
	raw, err := s.llm.GenerateJSON(ctx, p.System, p.User, p.SchemaName, p.Schema)
	if err != nil {
		return nil, s.fail(ctx, span, observability.OutcomeUpstreamError, start, fmt.Errorf("%w: %w", ErrUpstream, err))
	}

	plan, err := decodePlan(raw)
	if err != nil {
		return nil, s.fail(ctx, span, observability.OutcomeMalformedResponse, start, fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}
	studyplan.Normalize(plan)

	s.metrics.ObservePlanGeneration(observability.OutcomeOK, len(plan.Tasks))
	span.SetAttributes(attribute.Int("plan.tasks", len(plan.Tasks)))
	s.log.Info("study plan generated", append(ctxutil.LogFields(ctx),
		"model", s.llm.Model(),
		"latency_ms", time.Since(start).Milliseconds(),
		"task_count", len(plan.Tasks),
		"total_hours", plan.TotalHours,
	)...)
	return plan, nil
}

func (s *studyPlanService) fail(ctx context.Context, span trace.Span, outcome string, start time.Time, err error) error {
	s.metrics.ObservePlanGeneration(outcome, 0)
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
	level := s.log.Warn
	if errors.Is(err, context.Canceled) {
		level = s.log.Debug
	}
	level("study plan generation failed", append(ctxutil.LogFields(ctx),
		"model", s.llm.Model(),
		"reason", outcome,
		"latency_ms", time.Since(start).Milliseconds(),
		"error", err,
	)...)
	return err
}
