package booking

// Step is one stage of the booking flow.
type Step string

const (
	StepService  Step = "service"
	StepDoctor   Step = "doctor"
	StepSchedule Step = "schedule"
	StepDetails  Step = "details"
	StepConfirm  Step = "confirm"
)

// Steps is the fixed flow order.
var Steps = []Step{StepService, StepDoctor, StepSchedule, StepDetails, StepConfirm}

var stepLabels = map[Step]string{
	StepService:  "Service",
	StepDoctor:   "Doctor",
	StepSchedule: "Schedule",
	StepDetails:  "Details",
	StepConfirm:  "Confirm",
}

// allowedTransitions lists the moves the wizard makes on its own: one step
// forward once the prerequisites hold, or one step back. EditStep jumps are
// explicit and bypass this table.
var allowedTransitions = map[Step][]Step{
	StepService:  {StepDoctor},
	StepDoctor:   {StepSchedule, StepService},
	StepSchedule: {StepDetails, StepDoctor},
	StepDetails:  {StepConfirm, StepSchedule},
	StepConfirm:  {StepDetails},
}

// Valid reports whether s is one of the five steps.
func (s Step) Valid() bool {
	_, ok := stepLabels[s]
	return ok
}

// Index is the zero-based position of s in the flow, or -1.
func (s Step) Index() int {
	for i, candidate := range Steps {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Label is the display name of the step.
func (s Step) Label() string {
	return stepLabels[s]
}

// StepAt returns the step at ordinal i.
func StepAt(i int) (Step, bool) {
	if i < 0 || i >= len(Steps) {
		return "", false
	}
	return Steps[i], true
}

// Previous returns the step before s. ok is false at the first step.
func (s Step) Previous() (Step, bool) {
	return StepAt(s.Index() - 1)
}

// CanTransition reports whether the table allows from -> to.
func CanTransition(from, to Step) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Progress describes where the wizard is for the header bar.
type Progress struct {
	Step    Step    `json:"step"`
	Label   string  `json:"label"`
	Number  int     `json:"number"` // 1-based
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// ProgressOf computes the progress bar values for s.
func ProgressOf(s Step) Progress {
	idx := s.Index()
	return Progress{
		Step:    s,
		Label:   s.Label(),
		Number:  idx + 1,
		Total:   len(Steps),
		Percent: float64(idx+1) / float64(len(Steps)) * 100,
	}
}
