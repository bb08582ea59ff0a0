package models

// Plan is the subscription tier gating which quizzes and sessions a student sees.
type Plan string

const (
	PlanGroup      Plan = "group"
	PlanIndividual Plan = "individual"
)

// Visible reports whether an item with itemPlan is visible to a student with
// studentPlan. Group items are shared with everyone; individual items are
// only visible to individual-plan students. Both the session list and the
// quiz list filter through this single predicate.
func Visible(itemPlan, studentPlan Plan) bool {
	return itemPlan == studentPlan || itemPlan == PlanGroup
}
