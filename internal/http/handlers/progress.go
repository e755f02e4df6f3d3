package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyplanner-backend/internal/domain/studyplan"
	"github.com/yungbote/studyplanner-backend/internal/http/response"
	"github.com/yungbote/studyplanner-backend/internal/services"
)

type ProgressHandler struct {
	progress services.ProgressService
}

func NewProgressHandler(progress services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

type progressReportRequest struct {
	StudyPlan   *studyplan.StudyPlan `json:"studyPlan"`
	QuizAnswers map[string]string    `json:"quizAnswers"`
}

// POST /api/progress-report
func (h *ProgressHandler) Report(c *gin.Context) {
	var req progressReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", "Invalid JSON request body.")
		return
	}
	if req.StudyPlan == nil {
		response.RespondError(c, http.StatusBadRequest, "missing_fields", "studyPlan is required.")
		return
	}
	response.RespondOK(c, h.progress.Report(c.Request.Context(), *req.StudyPlan, req.QuizAnswers))
}
