package wizard

import (
	catalogdomain "github.com/strongslime/atelier/internal/catalog/domain"
	sessiondomain "github.com/strongslime/atelier/internal/session/domain"
)

// order is the strict linear step sequence. Forward motion is one step
// at a time (upload may be skipped), backward motion is one step at a
// time and a no-op at the initial step.
var order = []sessiondomain.Step{
	sessiondomain.StepType,
	sessiondomain.StepSubType,
	sessiondomain.StepDetails,
	sessiondomain.StepUpload,
	sessiondomain.StepSummary,
	sessiondomain.StepTOS,
}

func indexOf(step sessiondomain.Step) int {
	for i, s := range order {
		if s == step {
			return i
		}
	}
	return -1
}

// Next returns the step after the given one, or the same step at the
// end of the sequence.
func Next(step sessiondomain.Step) sessiondomain.Step {
	i := indexOf(step)
	if i < 0 || i == len(order)-1 {
		return step
	}
	return order[i+1]
}

// Prev returns the step before the given one. The initial step has no
// predecessor.
func Prev(step sessiondomain.Step) sessiondomain.Step {
	i := indexOf(step)
	if i <= 0 {
		return step
	}
	return order[i-1]
}

// ExportAllowed is the single hard gate in the machine: the export
// action is enabled only once the terms of service are accepted.
func ExportAllowed(st sessiondomain.SelectionState) bool {
	return st.TOSAccepted
}

// canEnter gates forward transitions. Details requires a resolvable
// type and subtype; everything else is reachable unconditionally.
func canEnter(cat catalogdomain.Catalog, st sessiondomain.SelectionState, step sessiondomain.Step) bool {
	if step != sessiondomain.StepDetails {
		return true
	}
	ctype, ok := cat.FindType(st.TypeID)
	if !ok {
		return false
	}
	_, ok = ctype.FindSubType(st.SubTypeID)
	return ok
}

func initialStep(cat catalogdomain.Catalog) sessiondomain.Step {
	if len(cat.SelectableTypes()) == 1 {
		return sessiondomain.StepSubType
	}
	return sessiondomain.StepType
}
