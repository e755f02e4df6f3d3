package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yungbote/studyplanner-backend/internal/domain/studyplan"
)

const barWidth = 20

// FormatPlan renders the task list grouped by date followed by the progress summary.
func FormatPlan(plan *studyplan.StudyPlan) string {
	if plan == nil {
		return Dim("No plan.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Study plan"))
	fmt.Fprintf(&b, "\n%s %s → %s   %s %s\n\n",
		Dim("Window:"), plan.StartDate, plan.Deadline,
		Dim("Total:"), hours(plan.TotalHours))

	if len(plan.Tasks) == 0 {
		b.WriteString(Dim("  (no tasks)") + "\n")
	}
	lastDate := ""
	for _, t := range plan.Tasks {
		if t.Date != lastDate {
			if lastDate != "" {
				b.WriteString("\n")
			}
			b.WriteString(StyleBlue.Render(t.Date) + "\n")
			lastDate = t.Date
		}
		mark := StyleDim.Render("○")
		if t.Completed {
			mark = StyleGreen.Render("●")
		}
		fmt.Fprintf(&b, "  %s %s %s\n", mark, Bold(t.Topic), Dim("("+hours(t.EstimatedHours)+")"))
		for _, sub := range t.Subtasks {
			fmt.Fprintf(&b, "      - %s\n", sub)
		}
	}

	b.WriteString("\n")
	b.WriteString(FormatSummary(studyplan.Summarize(*plan)))
	return b.String()
}

func FormatSummary(s studyplan.Summary) string {
	var b strings.Builder
	b.WriteString(Header("Progress"))
	fmt.Fprintf(&b, "\n%s %d/%d tasks\n", RenderProgress(s.CompletionPct/100, barWidth), s.CompletedTasks, s.TotalTasks)
	fmt.Fprintf(&b, "%s %s planned, %s done\n", Dim("Hours:"), hours(s.PlannedHours), hours(s.CompletedHours))
	if len(s.HoursByTopic) > 0 {
		b.WriteString("\n")
		width := 0
		for _, th := range s.HoursByTopic {
			if len(th.Topic) > width {
				width = len(th.Topic)
			}
		}
		for _, th := range s.HoursByTopic {
			fmt.Fprintf(&b, "  %-*s  %s  %s\n", width, th.Topic, hours(th.Hours), Dim(fmt.Sprintf("%d tasks", th.Tasks)))
		}
	}
	return b.String()
}

func hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}
