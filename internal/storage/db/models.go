package db

// DifficultyLevels is the closed set of values accepted for a ballet's
// difficulty_level and a step's difficulty.
var DifficultyLevels = []string{"Beginner", "Intermediate", "Advanced"}

// EquipmentCategories is the closed set of values accepted for an equipment
// row's category.
var EquipmentCategories = []string{
	"Footwear", "Attire", "Training Equipment", "Facility", "Accessories",
}

// User is a registered account. The password hash is never serialized.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// Ballet is a catalogued work. Only title, composer, and choreographer are
// required; the remaining columns are nullable and surface as JSON null.
type Ballet struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Composer        string  `json:"composer"`
	Choreographer   string  `json:"choreographer"`
	YearPremiered   *int64  `json:"year_premiered"`
	DifficultyLevel *string `json:"difficulty_level"`
	DurationMinutes *int64  `json:"duration_minutes"`
	Description     *string `json:"description"`
	SubmittedBy     *int64  `json:"submitted_by"`
}

// Step is a named movement in the repertoire.
type Step struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	SubmittedBy *int64 `json:"submitted_by"`
}

// Equipment is a piece of gear or facility used by steps.
type Equipment struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	SubmittedBy *int64 `json:"submitted_by"`
}

// SequencedStep is a step joined through ballet_steps, carrying its position
// in the ballet's sequence.
type SequencedStep struct {
	Step
	SequenceOrder int64 `json:"sequence_order"`
}

// RequiredEquipment is equipment joined through step_equipment, carrying the
// mandatory-vs-optional flag for the step.
type RequiredEquipment struct {
	Equipment
	Required bool `json:"required"`
}

// BalletStepRow is a SequencedStep tagged with its parent ballet, produced by
// the batch join that backs the ballets-with-steps aggregate.
type BalletStepRow struct {
	BalletID int64
	SequencedStep
}

// StepEquipmentRow is a RequiredEquipment tagged with its parent step,
// produced by the batch join that backs the steps-with-equipment aggregate.
type StepEquipmentRow struct {
	StepID int64
	RequiredEquipment
}
