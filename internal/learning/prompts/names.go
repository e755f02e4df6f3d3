package prompts

type PromptName string

const (
	PromptStudyPlan PromptName = "study_plan"
)
