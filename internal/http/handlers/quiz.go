package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyplanner-backend/internal/http/response"
	"github.com/yungbote/studyplanner-backend/internal/services"
)

type QuizHandler struct {
	quiz services.QuizService
}

func NewQuizHandler(quiz services.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

// GET /api/quiz
func (h *QuizHandler) Questions(c *gin.Context) {
	response.RespondOK(c, gin.H{"questions": h.quiz.Questions()})
}

type assessQuizRequest struct {
	Answers map[string]string `json:"answers"`
}

// POST /api/quiz/assess
func (h *QuizHandler) Assess(c *gin.Context) {
	var req assessQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", "Invalid JSON request body.")
		return
	}
	response.RespondOK(c, h.quiz.Assess(c.Request.Context(), req.Answers))
}
