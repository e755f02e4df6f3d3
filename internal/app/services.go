package app

import (
	"context"
	"fmt"

	"github.com/yungbote/studyplanner-backend/internal/domain/quiz"
	"github.com/yungbote/studyplanner-backend/internal/observability"
	"github.com/yungbote/studyplanner-backend/internal/platform/gemini"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
	"github.com/yungbote/studyplanner-backend/internal/services"
)

type Services struct {
	StudyPlan services.StudyPlanService
	Quiz      services.QuizService
	Progress  services.ProgressService
}

func wireServices(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Services, error) {
	plans, err := NewStudyPlanService(ctx, log, cfg, metrics)
	if err != nil {
		return Services{}, err
	}
	quizSvc, err := NewQuizService(log, cfg, metrics)
	if err != nil {
		return Services{}, err
	}
	return Services{
		StudyPlan: plans,
		Quiz:      quizSvc,
		Progress:  services.NewProgressService(log, quizSvc),
	}, nil
}

// NewStudyPlanService builds the gateway on a real Gemini client. It fails on
// a missing API key.
func NewStudyPlanService(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (services.StudyPlanService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	llm, err := gemini.NewClient(ctx, log, gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	}, metrics)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return services.NewStudyPlanService(log, llm, metrics), nil
}

// NewQuizService uses the embedded bank unless QuizBankPath is set.
func NewQuizService(log *logger.Logger, cfg Config, metrics *observability.Metrics) (services.QuizService, error) {
	bank := quiz.DefaultBank()
	if cfg.QuizBankPath != "" {
		var err error
		bank, err = quiz.LoadBankFile(cfg.QuizBankPath)
		if err != nil {
			return nil, fmt.Errorf("load quiz bank: %w", err)
		}
		log.Info("Loaded quiz bank", "path", cfg.QuizBankPath, "questions", bank.Len())
	}
	return services.NewQuizService(log, bank, metrics), nil
}
