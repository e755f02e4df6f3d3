package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyplanner-backend/internal/domain/studyplan"
	"github.com/yungbote/studyplanner-backend/internal/http/response"
	"github.com/yungbote/studyplanner-backend/internal/platform/apierr"
	"github.com/yungbote/studyplanner-backend/internal/platform/ctxutil"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
	"github.com/yungbote/studyplanner-backend/internal/services"
)

const (
	msgMissingFields    = "Missing required fields in request body."
	msgGenerationFailed = "Failed to generate study plan."
)

type StudyPlanHandler struct {
	log     *logger.Logger
	plans   services.StudyPlanService
	timeout time.Duration
}

// NewStudyPlanHandler bounds each generation by timeout; zero means only the
// request context applies.
func NewStudyPlanHandler(log *logger.Logger, plans services.StudyPlanService, timeout time.Duration) *StudyPlanHandler {
	return &StudyPlanHandler{
		log:     log.With("handler", "StudyPlanHandler"),
		plans:   plans,
		timeout: timeout,
	}
}

// uploadedFile is the metadata the upload page keeps; content is never sent.
type uploadedFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type generateStudyPlanRequest struct {
	HoursPerWeek  *float64       `json:"hoursPerWeek"`
	StartDate     *string        `json:"startDate"`
	Deadline      *string        `json:"deadline"`
	WeakTopics    *[]string      `json:"weakTopics"`
	MaterialNames []string       `json:"materialNames"`
	UploadedFiles []uploadedFile `json:"uploadedFiles"`
}

func (r generateStudyPlanRequest) complete() bool {
	return r.HoursPerWeek != nil &&
		r.StartDate != nil && strings.TrimSpace(*r.StartDate) != "" &&
		r.Deadline != nil && strings.TrimSpace(*r.Deadline) != "" &&
		r.WeakTopics != nil
}

func (r generateStudyPlanRequest) constraints() studyplan.PlanConstraints {
	materials := make([]string, 0, len(r.MaterialNames)+len(r.UploadedFiles))
	for _, m := range r.MaterialNames {
		if m = strings.TrimSpace(m); m != "" {
			materials = append(materials, m)
		}
	}
	for _, f := range r.UploadedFiles {
		if n := strings.TrimSpace(f.Name); n != "" {
			materials = append(materials, n)
		}
	}
	return studyplan.PlanConstraints{
		HoursPerWeek:  *r.HoursPerWeek,
		StartDate:     strings.TrimSpace(*r.StartDate),
		Deadline:      strings.TrimSpace(*r.Deadline),
		WeakTopics:    studyplan.CleanTopics(*r.WeakTopics),
		MaterialNames: materials,
	}
}

// POST /api/generate-study-plan
func (h *StudyPlanHandler) Generate(c *gin.Context) {
	var req generateStudyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", "Invalid JSON request body.")
		return
	}
	if !req.complete() {
		response.RespondError(c, http.StatusBadRequest, "missing_fields", msgMissingFields)
		return
	}
	cons := req.constraints()
	if err := cons.Validate(); err != nil {
		response.RespondAPIError(c, apierr.New(http.StatusBadRequest, "invalid_constraints", err.Error(), err))
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	plan, err := h.plans.Generate(ctx, cons)
	if err != nil {
		h.log.Error("Generate study plan failed", append(ctxutil.LogFields(ctx), "error", err)...)
		_ = c.Error(err)
		response.RespondAPIError(c, apierr.New(http.StatusInternalServerError, "generation_failed", msgGenerationFailed, err))
		return
	}
	response.RespondOK(c, plan)
}
