package app

import (
	httpH "github.com/yungbote/studyplanner-backend/internal/http/handlers"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	StudyPlan *httpH.StudyPlanHandler
	Quiz      *httpH.QuizHandler
	Progress  *httpH.ProgressHandler
}

func wireHandlers(log *logger.Logger, cfg Config, svc Services) Handlers {
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		StudyPlan: httpH.NewStudyPlanHandler(log, svc.StudyPlan, cfg.GenerationTimeout),
		Quiz:      httpH.NewQuizHandler(svc.Quiz),
		Progress:  httpH.NewProgressHandler(svc.Progress),
	}
}
