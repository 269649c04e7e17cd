package wells

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/notargets/reswell/grid"
	"github.com/notargets/reswell/schedule"
)

// ModelFactory creates the actuator model for one well
type ModelFactory func(name string) Model

// Manager owns the wells of one mesh partition and keeps their control
// state and DOF assignment in sync with the schedule, one report step at a
// time. It is single-threaded; in a distributed run each rank holds its
// own Manager against its locally owned elements, and cross-rank
// consistency follows from every rank seeing the same schedule.
type Manager struct {
	mesh     grid.Mesh
	solver   Solver
	newModel ModelFactory
	opts     Options
	log      logr.Logger

	// Registry. Wells are created once by Init and never removed; a well
	// absent from a step's schedule is simply not touched that step.
	wells           []Model
	wellNameToIndex map[string]int
}

// NewManager creates a well manager bound to one mesh partition and its
// solver. Use logr.Discard() to disable logging.
func NewManager(mesh grid.Mesh, solver Solver, newModel ModelFactory, opts Options, log logr.Logger) *Manager {
	return &Manager{
		mesh:     mesh,
		solver:   solver,
		newModel: newModel,
		opts:     opts,
		log:      log,
	}
}

// Init sets up the basic properties of all wells: one placeholder model
// per distinct name anywhere in the schedule horizon. Everything beyond
// the name is populated by BeginEpisode. Call exactly once per simulation.
func (m *Manager) Init(sched *schedule.Schedule) error {
	if m.wellNameToIndex != nil {
		return fmt.Errorf("well manager already initialized")
	}
	m.wellNameToIndex = make(map[string]int)

	for _, name := range sched.WellNames() {
		well := m.newModel(name)
		m.wellNameToIndex[name] = len(m.wells)
		m.wells = append(m.wells, well)

		// If a well has no completions yet it primarily serves as a
		// placeholder; BeginEpisode specifies the rest.
		well.BeginSpec()
		well.SetName(name)
		well.EndSpec()
	}
	return nil
}

// BeginEpisode adapts the well controls to the given report step. A
// restart forces a topology rebuild, since no topology survives a restart;
// everything else is re-derived from the schedule.
func (m *Manager) BeginEpisode(sched *schedule.Schedule, step int, wasRestarted bool) error {
	compMap, err := m.buildCompletionMap(sched, step)
	if err != nil {
		return err
	}

	if wasRestarted || m.topologyChanged(sched, step) {
		if err := m.rebuildTopology(compMap); err != nil {
			return err
		}
	}

	// Parameters which do not change the topology of the linearized
	// system are pushed every step.
	if err := m.applyStepParameters(sched, step, compMap); err != nil {
		return err
	}
	return m.applyStepControls(sched, step)
}

// EndEpisode is a hook for the end of a report step. Nothing to do: all
// well state is re-derived from the schedule.
func (m *Manager) EndEpisode() {}

// NumWells returns the number of wells in the registry
func (m *Manager) NumWells() int {
	return len(m.wells)
}

// HasWell reports whether the given name is known to the registry
func (m *Manager) HasWell(name string) bool {
	_, ok := m.wellNameToIndex[name]
	return ok
}

// WellIndex returns the stable registry index of the named well
func (m *Manager) WellIndex(name string) (int, error) {
	idx, ok := m.wellNameToIndex[name]
	if !ok {
		return 0, fmt.Errorf("no well called %q: %w", name, ErrWellNotFound)
	}
	return idx, nil
}

// WellByName returns the named well's model
func (m *Manager) WellByName(name string) (Model, error) {
	idx, err := m.WellIndex(name)
	if err != nil {
		return nil, err
	}
	return m.wells[idx], nil
}

// WellByIndex returns the model at the given registry index
func (m *Manager) WellByIndex(idx int) (Model, error) {
	if idx < 0 || idx >= len(m.wells) {
		return nil, fmt.Errorf("well index %d out of range [0,%d): %w", idx, len(m.wells), ErrWellNotFound)
	}
	return m.wells[idx], nil
}

// BeginTimeStep notifies every well that a time step has begun
func (m *Manager) BeginTimeStep() {
	for _, well := range m.wells {
		well.BeginTimeStep()
	}
}

// BeginIteration notifies every well that a Newton iteration has begun.
// The protocol has three phases so that a single traversal of the local
// mesh serves all wells: per-well pre-processing, one accumulation walk
// feeding every well each local element, then per-well post-processing.
func (m *Manager) BeginIteration(timeIdx int) error {
	for _, well := range m.wells {
		well.BeginIterationPreProcess()
	}

	err := m.mesh.EachLocalElement(func(ctx grid.ElementContext) error {
		for _, well := range m.wells {
			well.BeginIterationAccumulate(ctx, timeIdx)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("begin iteration: %w", err)
	}

	for _, well := range m.wells {
		well.BeginIterationPostProcess()
	}
	return nil
}

// EndIteration notifies every well that an iteration has finished
func (m *Manager) EndIteration() {
	for _, well := range m.wells {
		well.EndIteration()
	}
}

// EndTimeStep notifies every well that a time step has finished
func (m *Manager) EndTimeStep() {
	for _, well := range m.wells {
		well.EndTimeStep()
	}
}

// ComputeTotalRatesForDof sums the source term due to all wells for one
// degree of freedom into q. Wells with no assignment there contribute
// zero.
func (m *Manager) ComputeTotalRatesForDof(q RateVector, ctx grid.ElementContext, dof, timeIdx int) {
	q.Zero()

	wellRate := NewRateVector()
	for _, well := range m.wells {
		wellRate.Zero()
		well.ComputeTotalRatesForDof(wellRate, ctx, dof, timeIdx)
		q.Add(wellRate)
	}
}
