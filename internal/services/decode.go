package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/studyplanner-backend/internal/domain/studyplan"
)

// Wire shapes with pointer fields so absent keys can be told apart from zero values.
type wireTask struct {
	Date           *string   `json:"date"`
	Topic          *string   `json:"topic"`
	Tasks          *[]string `json:"tasks"`
	EstimatedHours *float64  `json:"estimatedHours"`
	Completed      *bool     `json:"completed"`
}

type wirePlan struct {
	Tasks      *[]wireTask `json:"tasks"`
	StartDate  *string     `json:"startDate"`
	Deadline   *string     `json:"deadline"`
	TotalHours *float64    `json:"totalHours"`
}

// decodePlan parses model output against the study plan schema. Every
// required field must be present except completed, which is overwritten
// by Normalize anyway. Each task needs at least one subtask.
func decodePlan(raw []byte) (*studyplan.StudyPlan, error) {
	raw = bytes.TrimSpace(stripCodeFence(raw))
	if len(raw) == 0 {
		return nil, errors.New("empty body")
	}
	var w wirePlan
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	var missing []string
	if w.Tasks == nil {
		missing = append(missing, "tasks")
	}
	if w.StartDate == nil {
		missing = append(missing, "startDate")
	}
	if w.Deadline == nil {
		missing = append(missing, "deadline")
	}
	if w.TotalHours == nil {
		missing = append(missing, "totalHours")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	plan := &studyplan.StudyPlan{
		Tasks:      make([]studyplan.StudyTask, 0, len(*w.Tasks)),
		StartDate:  *w.StartDate,
		Deadline:   *w.Deadline,
		TotalHours: *w.TotalHours,
	}
	for i, t := range *w.Tasks {
		var tm []string
		if t.Date == nil {
			tm = append(tm, "date")
		}
		if t.Topic == nil {
			tm = append(tm, "topic")
		}
		if t.Tasks == nil {
			tm = append(tm, "tasks")
		}
		if t.EstimatedHours == nil {
			tm = append(tm, "estimatedHours")
		}
		if len(tm) > 0 {
			return nil, fmt.Errorf("tasks[%d]: missing required fields: %s", i, strings.Join(tm, ", "))
		}
		if len(*t.Tasks) == 0 {
			return nil, fmt.Errorf("tasks[%d]: no subtasks", i)
		}
		task := studyplan.StudyTask{
			Date:           *t.Date,
			Topic:          *t.Topic,
			Subtasks:       append([]string{}, (*t.Tasks)...),
			EstimatedHours: *t.EstimatedHours,
		}
		if t.Completed != nil {
			task.Completed = *t.Completed
		}
		plan.Tasks = append(plan.Tasks, task)
	}
	return plan, nil
}

// stripCodeFence removes a ```json fence around the body, if any.
func stripCodeFence(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return raw
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(s)
}
