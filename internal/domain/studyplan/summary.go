package studyplan

type TopicHours struct {
	Topic string  `json:"topic"`
	Hours float64 `json:"hours"`
	Tasks int     `json:"tasks"`
}

// Summary is a read-only progress view over a plan.
type Summary struct {
	TotalTasks     int          `json:"totalTasks"`
	CompletedTasks int          `json:"completedTasks"`
	RemainingTasks int          `json:"remainingTasks"`
	CompletionPct  float64      `json:"completionPct"`
	PlannedHours   float64      `json:"plannedHours"`
	CompletedHours float64      `json:"completedHours"`
	HoursByTopic   []TopicHours `json:"hoursByTopic"`
}

func Summarize(plan StudyPlan) Summary {
	s := Summary{
		TotalTasks:   len(plan.Tasks),
		HoursByTopic: []TopicHours{},
	}
	index := map[string]int{}
	for _, t := range plan.Tasks {
		s.PlannedHours += t.EstimatedHours
		if t.Completed {
			s.CompletedTasks++
			s.CompletedHours += t.EstimatedHours
		}
		i, ok := index[t.Topic]
		if !ok {
			i = len(s.HoursByTopic)
			index[t.Topic] = i
			s.HoursByTopic = append(s.HoursByTopic, TopicHours{Topic: t.Topic})
		}
		s.HoursByTopic[i].Hours += t.EstimatedHours
		s.HoursByTopic[i].Tasks++
	}
	s.RemainingTasks = s.TotalTasks - s.CompletedTasks
	if s.TotalTasks > 0 {
		s.CompletionPct = float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
	}
	return s
}
