package scene

import "time"

// PanelKind identifies one of the full-screen feature panels.
type PanelKind int

const (
	PanelNone PanelKind = iota
	PanelSchedule
	PanelWorkout
	PanelDestressor
	PanelVoiceInput
	PanelHeartRisk
)

// Kinds lists every launchable panel, in launcher order.
var Kinds = []PanelKind{
	PanelDestressor,
	PanelWorkout,
	PanelHeartRisk,
	PanelSchedule,
	PanelVoiceInput,
}

// String returns the panel's display name.
func (k PanelKind) String() string {
	switch k {
	case PanelSchedule:
		return "Schedule"
	case PanelWorkout:
		return "Workout"
	case PanelDestressor:
		return "Destressor"
	case PanelVoiceInput:
		return "Voice"
	case PanelHeartRisk:
		return "Heart Risk"
	default:
		return "None"
	}
}

// Command is an animation instruction emitted by the Controller. The
// rendering layer applies commands to whatever it draws; the Controller
// never touches a render object directly.
type Command interface {
	sceneCommand()
}

// RotateBy turns the model by the given number of quarter turns
// (negative = back) over Duration.
type RotateBy struct {
	Quarters int
	Duration time.Duration
}

// SetOpacity fades the model to Level (0.0–1.0) over Duration.
type SetOpacity struct {
	Level    float64
	Duration time.Duration
}

// ResetOrientation returns the model to its original heading over Duration.
type ResetOrientation struct {
	Duration time.Duration
}

func (RotateBy) sceneCommand()         {}
func (SetOpacity) sceneCommand()       {}
func (ResetOrientation) sceneCommand() {}
