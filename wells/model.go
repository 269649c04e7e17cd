// Package wells manages well controls and completion topology for a
// cell-centered reservoir flow simulator. Each report step it materializes
// the wells named by the schedule, maps their completions onto the locally
// owned mesh partition, rebuilds the solver's coupling structure when (and
// only when) that topology changed, and translates the schedule's control
// specification into the compact state consumed by the per-well actuator
// models.
package wells

import (
	"github.com/notargets/reswell/grid"
	"gonum.org/v1/gonum/floats"
)

// Phase indices within rate and weight vectors
const (
	PhaseOil = iota
	PhaseGas
	PhaseWater
	NumPhases
)

// Status is the internal status of a well
type Status uint8

const (
	Open Status = iota
	Closed
	Shut
)

// WellType distinguishes injectors from producers
type WellType uint8

const (
	Undefined WellType = iota
	Injector
	Producer
)

// ControlMode is the quantity a well holds at its target value while the
// complementary quantity floats
type ControlMode uint8

const (
	ControlUndefined ControlMode = iota
	VolumetricSurfaceRate
	VolumetricReservoirRate
	BottomHolePressure
	TubingHeadPressure
)

// RateVector holds one volumetric rate per phase, indexed by the Phase*
// constants
type RateVector []float64

// NewRateVector returns a zeroed rate vector
func NewRateVector() RateVector {
	return make(RateVector, NumPhases)
}

// Zero resets all components
func (q RateVector) Zero() {
	for i := range q {
		q[i] = 0
	}
}

// Add accumulates r into q component-wise
func (q RateVector) Add(r RateVector) {
	floats.Add(q, r)
}

// Model is the per-well numerical actuator (e.g. a Peaceman-type well
// model). The manager owns one Model per schedule-declared well and drives
// it through this contract; the model's internals are outside this package.
type Model interface {
	// Specification protocol, run once at registry initialization
	BeginSpec()
	SetName(name string)
	EndSpec()

	Name() string

	// Control state, pushed every report step
	SetWellStatus(status Status)
	SetWellType(wellType WellType)
	SetControlMode(mode ControlMode)
	SetInjectedPhaseIndex(phase int)
	SetVolumetricPhaseWeights(oil, gas, water float64)
	SetMaximumSurfaceRate(rate float64)
	SetMaximumReservoirRate(rate float64)
	SetTargetBottomHolePressure(pressure float64)
	SetTargetTubingHeadPressure(pressure float64)
	SetReferenceDepth(depth float64)

	// DOF assignment. Clear forgets all assigned DOFs; AddDof assigns one
	// local degree of freedom. SetRadius and
	// SetConnectionTransmissibilityFactor are keyed by an assigned DOF.
	Clear()
	AddDof(ctx grid.ElementContext, dof int)
	SetRadius(ctx grid.ElementContext, dof int, radius float64)
	SetConnectionTransmissibilityFactor(ctx grid.ElementContext, dof int, factor float64)

	// Lifecycle notifications. The begin-iteration protocol is split so
	// one mesh traversal can feed every well.
	BeginTimeStep()
	BeginIterationPreProcess()
	BeginIterationAccumulate(ctx grid.ElementContext, timeIdx int)
	BeginIterationPostProcess()
	EndIteration()
	EndTimeStep()

	// ComputeTotalRatesForDof adds nothing for DOFs the well is not
	// assigned to; q is fully overwritten.
	ComputeTotalRatesForDof(q RateVector, ctx grid.ElementContext, dof, timeIdx int)
}

// Solver is the host's auxiliary-equation registration surface. A well is
// registered only while it has at least one assigned DOF.
type Solver interface {
	ClearAuxiliaryEquations()
	AddAuxiliaryEquation(m Model)
}
