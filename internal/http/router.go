package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/studyplanner-backend/internal/http/handlers"
	httpMW "github.com/yungbote/studyplanner-backend/internal/http/middleware"
	"github.com/yungbote/studyplanner-backend/internal/observability"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
)

const serviceName = "studyplanner-backend"

type RouterConfig struct {
	Log             *logger.Logger
	Metrics         *observability.Metrics
	AllowedOrigins  []string
	MaxRequestBytes int64
	// Tracing wraps every request in an otelgin server span.
	Tracing bool

	HealthHandler    *httpH.HealthHandler
	StudyPlanHandler *httpH.StudyPlanHandler
	QuizHandler      *httpH.QuizHandler
	ProgressHandler  *httpH.ProgressHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.BodyLimit(cfg.MaxRequestBytes))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.Status)
		}

		// Study plan
		if cfg.StudyPlanHandler != nil {
			api.POST("/generate-study-plan", cfg.StudyPlanHandler.Generate)
		}

		// Quiz
		if cfg.QuizHandler != nil {
			api.GET("/quiz", cfg.QuizHandler.Questions)
			api.POST("/quiz/assess", cfg.QuizHandler.Assess)
		}

		// Progress
		if cfg.ProgressHandler != nil {
			api.POST("/progress-report", cfg.ProgressHandler.Report)
		}
	}

	return r
}
