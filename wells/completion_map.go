package wells

import (
	"github.com/notargets/reswell/schedule"
)

// completionEntry pairs one schedule completion with the registry index of
// its owning well
type completionEntry struct {
	completion schedule.Completion
	wellIdx    int
}

// completionMap maps a linearized cartesian cell index to the completion
// occupying that cell. Rebuilt from the schedule every report step.
type completionMap map[int]completionEntry

// buildCompletionMap computes the cartesian-index → (completion, well)
// mapping for one report step. A completion referencing a well name that
// was never registered is logged and skipped; the rest of the step
// proceeds. Two completions claiming the same cell are malformed input the
// coupling graph cannot represent and fail the step.
func (m *Manager) buildCompletionMap(sched *schedule.Schedule, step int) (completionMap, error) {
	compMap := make(completionMap)

	for _, deckWell := range sched.WellsAt(step) {
		wellIdx, ok := m.wellNameToIndex[deckWell.Name]
		if !ok {
			m.log.Info("ignoring completions of a well missing from the well list",
				"well", deckWell.Name, "step", step)
			continue
		}

		for _, compl := range deckWell.Completions {
			cartIdx := sched.CartesianIndex(compl.I, compl.J, compl.K)
			if prev, taken := compMap[cartIdx]; taken {
				return nil, &DuplicateCellOwnershipError{
					CartesianIndex: cartIdx,
					First:          m.wells[prev.wellIdx].Name(),
					Second:         deckWell.Name,
				}
			}
			compMap[cartIdx] = completionEntry{completion: compl, wellIdx: wellIdx}
		}
	}
	return compMap, nil
}
