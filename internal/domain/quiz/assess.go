package quiz

type TopicMastery struct {
	Topic   string  `json:"topic"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Mastery float64 `json:"mastery"`
}

type Assessment struct {
	WeakTopics []string       `json:"weakTopics"`
	Answered   int            `json:"answered"`
	Correct    int            `json:"correct"`
	Total      int            `json:"total"`
	Mastery    []TopicMastery `json:"mastery"`
}

// Assess scores answers keyed by question id. A topic is weak when one of its
// questions was answered and answered wrong; skipped questions never count.
// Unknown ids are ignored.
func (b *Bank) Assess(answers map[int]string) Assessment {
	a := Assessment{
		WeakTopics: []string{},
		Total:      len(b.questions),
		Mastery:    []TopicMastery{},
	}
	weak := map[string]bool{}
	index := map[string]int{}
	for _, q := range b.questions {
		i, ok := index[q.Topic]
		if !ok {
			i = len(a.Mastery)
			index[q.Topic] = i
			a.Mastery = append(a.Mastery, TopicMastery{Topic: q.Topic})
		}
		a.Mastery[i].Total++

		answer, given := answers[q.ID]
		if !given || answer == "" {
			continue
		}
		a.Answered++
		if answer == q.CorrectAnswer {
			a.Correct++
			a.Mastery[i].Correct++
			continue
		}
		if !weak[q.Topic] {
			weak[q.Topic] = true
			a.WeakTopics = append(a.WeakTopics, q.Topic)
		}
	}
	for i := range a.Mastery {
		m := &a.Mastery[i]
		m.Mastery = float64(m.Correct) / float64(m.Total) * 100
	}
	return a
}
