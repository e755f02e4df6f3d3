package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/studyplanner-backend/internal/domain/studyplan"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
)

func TestQuizService_QuestionsHideAnswers(t *testing.T) {
	svc := NewQuizService(logger.Nop(), nil, nil)
	qs := svc.Questions()
	require.Len(t, qs, 5)
	for _, q := range qs {
		assert.Empty(t, q.CorrectAnswer, "question %d leaks its answer", q.ID)
	}
}

func TestQuizService_AssessIgnoresBadKeys(t *testing.T) {
	svc := NewQuizService(logger.Nop(), nil, nil)
	res := svc.Assess(context.Background(), map[string]string{
		"2":   "wrong on purpose",
		"abc": "ignored",
		"99":  "ignored",
	})
	assert.Equal(t, 1, res.Answered)
	assert.Equal(t, []string{"Networking"}, res.WeakTopics)
}

func TestProgressService_Report(t *testing.T) {
	svc := NewProgressService(logger.Nop(), NewQuizService(logger.Nop(), nil, nil))
	plan := studyplan.StudyPlan{
		Tasks: []studyplan.StudyTask{
			{Date: "2024-01-01", Topic: "Networking", Subtasks: []string{"a"}, EstimatedHours: 2, Completed: true},
			{Date: "2024-01-02", Topic: "Databases", Subtasks: []string{"b"}, EstimatedHours: 3},
		},
		StartDate:  "2024-01-01",
		Deadline:   "2024-01-07",
		TotalHours: 5,
	}
	r := svc.Report(context.Background(), plan, nil)
	assert.Equal(t, 2, r.Progress.TotalTasks)
	assert.Equal(t, 1, r.Progress.CompletedTasks)
	assert.Equal(t, 0, r.Quiz.Answered)
	assert.Equal(t, 5, r.Quiz.Total)
	assert.True(t, plan.Tasks[0].Completed, "report must not mutate the plan")
}
