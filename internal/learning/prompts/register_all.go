package prompts

import "github.com/yungbote/studyplanner-backend/internal/domain/studyplan"

// BeginnerFallback is the instruction used when the learner has no weak topics.
const BeginnerFallback = "No weak topics were identified. Assume beginner level on all topics."

func init() {
	RegisterAll()
}

func RegisterAll() {
	RegisterSpec(Spec{
		Name:       PromptStudyPlan,
		Version:    1,
		SchemaName: "study_plan",
		Schema:     StudyPlanSchema,
		System: `
You are an expert IT certification coach. A student needs a personalized study plan.
Return JSON only.`,
		User: `
Student's constraints and details:
{{if .WeakTopicsCSV}}- Weak Topics (prioritize these): {{.WeakTopicsCSV}}
{{else}}- ` + BeginnerFallback + `
{{end}}- Available Study Time: {{.HoursPerWeek}} hours per week.
- Start Date: {{.StartDate}}
- Deadline: {{.Deadline}}
- Available Study Materials (titles): {{.MaterialsCSV}}

Task:
Create a detailed, day-by-day study plan from the start date to the deadline.
- Distribute the study hours evenly across the weeks.
- Break down topics into smaller, manageable tasks.
- Ensure weak topics get more attention.
- Be realistic about what can be achieved in the given time.
- Generate tasks like "Read chapter X on [topic]", "Complete practice quiz on [topic]", "Watch video on [sub-topic]", "Lab: Configure a basic firewall".
- The final output must be a valid JSON object matching the provided schema.`,
	})
}

// BuildStudyPlan renders the study plan prompt and its output schema.
func BuildStudyPlan(c studyplan.PlanConstraints) (Prompt, error) {
	return Build(PromptStudyPlan, InputFromConstraints(c))
}
