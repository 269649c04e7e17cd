package wells

import (
	"errors"
	"fmt"
)

// ErrWellNotFound is wrapped by name and index lookup failures
var ErrWellNotFound = errors.New("well not found")

// UnsupportedFeatureError reports a schedule input the manager refuses to
// approximate: multi-phase injection, group control, combined-rate control.
type UnsupportedFeatureError struct {
	Well    string
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("well %q: not implemented: %s", e.Well, e.Feature)
}

// UndefinedControlModeError reports a well whose control mode the schedule
// left undefined for an active step.
type UndefinedControlModeError struct {
	Well string
}

func (e *UndefinedControlModeError) Error() string {
	return fmt.Sprintf("control mode of well %q is undefined", e.Well)
}

// InconsistentWellStateError reports a well that is both or neither
// injector and producer for an active step.
type InconsistentWellStateError struct {
	Well string
}

func (e *InconsistentWellStateError) Error() string {
	return fmt.Sprintf("well %q must be either an injector or a producer, not both or neither", e.Well)
}

// DuplicateCellOwnershipError reports two wells claiming the same cell.
// The coupling graph cannot represent multi-well occupancy of one cell,
// so this is malformed input, not a recoverable condition.
type DuplicateCellOwnershipError struct {
	CartesianIndex int
	First, Second  string
}

func (e *DuplicateCellOwnershipError) Error() string {
	return fmt.Sprintf("cell %d is claimed by wells %q and %q; each cell may belong to at most one well",
		e.CartesianIndex, e.First, e.Second)
}
