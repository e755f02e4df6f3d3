package services

import (
	"context"

	"github.com/yungbote/studyplanner-backend/internal/domain/quiz"
	"github.com/yungbote/studyplanner-backend/internal/domain/studyplan"
	"github.com/yungbote/studyplanner-backend/internal/platform/ctxutil"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
)

type ProgressReport struct {
	Progress studyplan.Summary `json:"progress"`
	Quiz     quiz.Assessment   `json:"quiz"`
}

type ProgressService interface {
	Report(ctx context.Context, plan studyplan.StudyPlan, quizAnswers map[string]string) ProgressReport
}

type progressService struct {
	log  *logger.Logger
	quiz QuizService
}

func NewProgressService(baseLog *logger.Logger, quiz QuizService) ProgressService {
	return &progressService{
		log:  baseLog.With("service", "ProgressService"),
		quiz: quiz,
	}
}

func (s *progressService) Report(ctx context.Context, plan studyplan.StudyPlan, quizAnswers map[string]string) ProgressReport {
	r := ProgressReport{
		Progress: studyplan.Summarize(plan),
		Quiz:     s.quiz.Assess(ctx, quizAnswers),
	}
	s.log.Debug("progress report built", append(ctxutil.LogFields(ctx),
		"tasks", r.Progress.TotalTasks,
		"completed", r.Progress.CompletedTasks,
	)...)
	return r
}
