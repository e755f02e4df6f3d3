package studyplan

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used on the wire (ISO 8601, no time).
const DateLayout = "2006-01-02"

var ErrInvalidConstraints = errors.New("invalid study plan constraints")

// PlanConstraints is what a learner supplies when asking for a plan.
type PlanConstraints struct {
	HoursPerWeek  float64  `json:"hoursPerWeek"`
	StartDate     string   `json:"startDate"`
	Deadline      string   `json:"deadline"`
	WeakTopics    []string `json:"weakTopics"`
	MaterialNames []string `json:"materialNames,omitempty"`
}

// Validate checks the constraints before any generation call is made.
func (c PlanConstraints) Validate() error {
	if c.HoursPerWeek <= 0 {
		return fmt.Errorf("%w: hoursPerWeek must be positive", ErrInvalidConstraints)
	}
	start, err := ParseDate(c.StartDate)
	if err != nil {
		return fmt.Errorf("%w: startDate: %v", ErrInvalidConstraints, err)
	}
	deadline, err := ParseDate(c.Deadline)
	if err != nil {
		return fmt.Errorf("%w: deadline: %v", ErrInvalidConstraints, err)
	}
	if deadline.Before(start) {
		return fmt.Errorf("%w: deadline %s precedes startDate %s", ErrInvalidConstraints, c.Deadline, c.StartDate)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("date is required")
	}
	return time.Parse(DateLayout, s)
}

type StudyTask struct {
	Date           string   `json:"date"`
	Topic          string   `json:"topic"`
	Subtasks       []string `json:"tasks"`
	EstimatedHours float64  `json:"estimatedHours"`
	Completed      bool     `json:"completed"`
}

type StudyPlan struct {
	Tasks      []StudyTask `json:"tasks"`
	StartDate  string      `json:"startDate"`
	Deadline   string      `json:"deadline"`
	TotalHours float64     `json:"totalHours"`
}

// Normalize marks every task as not completed. Freshly generated plans never
// carry progress, whatever the model returned.
func Normalize(plan *StudyPlan) {
	if plan == nil {
		return
	}
	for i := range plan.Tasks {
		plan.Tasks[i].Completed = false
	}
}

// CleanTopics trims topic names, drops blanks and removes duplicates,
// keeping first-seen order. The result is never nil.
func CleanTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	seen := make(map[string]bool, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
