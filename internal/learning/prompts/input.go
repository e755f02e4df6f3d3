package prompts

import (
	"strconv"
	"strings"

	"github.com/yungbote/studyplanner-backend/internal/domain/studyplan"
)

// NoMaterials is rendered when the learner attached no study materials.
const NoMaterials = "None"

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	WeakTopicsCSV string
	HoursPerWeek  string
	StartDate     string
	Deadline      string
	MaterialsCSV  string
}

// InputFromConstraints renders constraints verbatim; nothing is validated here.
func InputFromConstraints(c studyplan.PlanConstraints) Input {
	materials := strings.Join(c.MaterialNames, ", ")
	if materials == "" {
		materials = NoMaterials
	}
	return Input{
		WeakTopicsCSV: strings.Join(c.WeakTopics, ", "),
		HoursPerWeek:  strconv.FormatFloat(c.HoursPerWeek, 'f', -1, 64),
		StartDate:     c.StartDate,
		Deadline:      c.Deadline,
		MaterialsCSV:  materials,
	}
}
