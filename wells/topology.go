package wells

import (
	"fmt"

	"github.com/notargets/reswell/grid"
	"github.com/notargets/reswell/schedule"
)

// topologyChanged reports whether the coupling structure of the linearized
// system differs between the given report step and its predecessor: wells
// appearing or disappearing, or any well's completion set changing by
// spatial (i,j,k) identity. Completion parameter changes (diameter,
// transmissibility) do not affect topology and are ignored here.
func (m *Manager) topologyChanged(sched *schedule.Schedule, step int) bool {
	if step == 0 {
		// The topology has always changed relative to before the
		// simulation started.
		return true
	}

	curWells := sched.WellsAt(step)
	prevWells := sched.WellsAt(step - 1)

	if len(curWells) != len(prevWells) {
		return true
	}

	prevByName := make(map[string]*schedule.Well, len(prevWells))
	for i := range prevWells {
		prevByName[prevWells[i].Name] = &prevWells[i]
	}

	for i := range curWells {
		cur := &curWells[i]
		prev, ok := prevByName[cur.Name]
		if !ok {
			// The well was not featured in the previous report step
			return true
		}

		if len(cur.Completions) != len(prev.Completions) {
			return true
		}

		// Equal counts: the sets must still match element-wise
		prevCells := make(map[[3]int]struct{}, len(prev.Completions))
		for _, c := range prev.Completions {
			prevCells[[3]int{c.I, c.J, c.K}] = struct{}{}
		}
		for _, c := range cur.Completions {
			if _, ok := prevCells[[3]int{c.I, c.J, c.K}]; !ok {
				return true
			}
		}
	}

	return false
}

// rebuildTopology re-derives every well's DOF assignment from scratch:
// deregister all auxiliary equations, clear all wells, walk the locally
// owned elements assigning each mapped DOF to its well, then register
// exactly the wells that gained at least one DOF. Safe to call repeatedly.
func (m *Manager) rebuildTopology(compMap completionMap) error {
	// First, remove all wells from the linearized system
	m.solver.ClearAuxiliaryEquations()
	for _, well := range m.wells {
		well.Clear()
	}

	// Tell the active wells which DOFs they contain
	touched := make(map[int]struct{})
	err := m.mesh.EachLocalElement(func(ctx grid.ElementContext) error {
		for dof := 0; dof < ctx.NumDof(); dof++ {
			entry, ok := compMap[ctx.CartesianIndex(dof)]
			if !ok {
				// The DOF is not contained in any well
				continue
			}
			m.wells[entry.wellIdx].AddDof(ctx, dof)
			touched[entry.wellIdx] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("rebuild well topology: %w", err)
	}

	// Register the touched wells as auxiliary equations, in stable
	// registry order. Wells with zero assigned DOFs contribute nothing to
	// the coupling graph and stay unregistered.
	for idx, well := range m.wells {
		if _, ok := touched[idx]; ok {
			m.solver.AddAuxiliaryEquation(well)
		}
	}
	return nil
}
