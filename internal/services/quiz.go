package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/yungbote/studyplanner-backend/internal/domain/quiz"
	"github.com/yungbote/studyplanner-backend/internal/observability"
	"github.com/yungbote/studyplanner-backend/internal/platform/ctxutil"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
)

type QuizService interface {
	Questions() []quiz.Question
	// Assess scores answers keyed by question id. Keys that are not
	// integers are ignored, like unknown ids.
	Assess(ctx context.Context, answers map[string]string) quiz.Assessment
}

type quizService struct {
	log     *logger.Logger
	bank    *quiz.Bank
	metrics *observability.Metrics
}

func NewQuizService(baseLog *logger.Logger, bank *quiz.Bank, metrics *observability.Metrics) QuizService {
	if bank == nil {
		bank = quiz.DefaultBank()
	}
	return &quizService{
		log:     baseLog.With("service", "QuizService"),
		bank:    bank,
		metrics: metrics,
	}
}

func (s *quizService) Questions() []quiz.Question {
	return s.bank.Public()
}

func (s *quizService) Assess(ctx context.Context, answers map[string]string) quiz.Assessment {
	res := s.bank.Assess(parseAnswerKeys(answers))
	s.metrics.IncQuizAssessed()
	s.log.Debug("quiz assessed", append(ctxutil.LogFields(ctx),
		"answered", res.Answered,
		"correct", res.Correct,
		"weak_topics", len(res.WeakTopics),
	)...)
	return res
}

func parseAnswerKeys(answers map[string]string) map[int]string {
	out := make(map[int]string, len(answers))
	for k, v := range answers {
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			continue
		}
		out[id] = v
	}
	return out
}
