package domain

// DispatchStage tracks a single order submission attempt through the
// dispatch pipeline.
type DispatchStage string

const (
	StageValidating  DispatchStage = "VALIDATING"
	StageSanitizing  DispatchStage = "SANITIZING"
	StageFormatting  DispatchStage = "FORMATTING"
	StageCopying     DispatchStage = "COPYING"
	StageConfirming  DispatchStage = "CONFIRMING"
	StageDispatching DispatchStage = "DISPATCHING"
	StageResolved    DispatchStage = "RESOLVED"
	StageRejected    DispatchStage = "REJECTED"
)

// transitions lists the stages reachable from each stage. Copying has no
// edge to Rejected: a clipboard failure degrades messaging, it never fails
// the attempt. Confirming may resolve directly when the user declines.
var transitions = map[DispatchStage][]DispatchStage{
	StageValidating:  {StageSanitizing, StageRejected},
	StageSanitizing:  {StageFormatting, StageRejected},
	StageFormatting:  {StageCopying, StageRejected},
	StageCopying:     {StageConfirming},
	StageConfirming:  {StageDispatching, StageResolved, StageRejected},
	StageDispatching: {StageResolved, StageRejected},
}

// CanTransitionTo reports whether the pipeline may move from one stage to
// another.
func CanTransitionTo(from, to DispatchStage) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s DispatchStage) IsTerminal() bool {
	return s == StageResolved || s == StageRejected
}

// String representation (for logging)
func (s DispatchStage) String() string {
	return string(s)
}
