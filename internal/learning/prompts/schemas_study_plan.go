package prompts

// StudyPlanSchema is the fixed output shape the study plan gateway parses.
func StudyPlanSchema() map[string]any {
	task := ObjectSchema(map[string]any{
		"date":           Describe(StringSchema(), "Date in YYYY-MM-DD format."),
		"topic":          StringSchema(),
		"tasks":          StringArraySchema(),
		"estimatedHours": NumberSchema(),
		"completed":      Describe(BoolSchema(), "Default to false"),
	}, []string{"date", "topic", "tasks", "estimatedHours", "completed"})

	return ObjectSchema(map[string]any{
		"tasks":      ArraySchema(task),
		"startDate":  StringSchema(),
		"deadline":   StringSchema(),
		"totalHours": NumberSchema(),
	}, []string{"tasks", "startDate", "deadline", "totalHours"})
}
