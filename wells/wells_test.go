package wells

// Shared test doubles: a recording well model, a recording solver, and
// schedule fixtures used across the package tests.

import (
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/notargets/reswell/grid"
	"github.com/notargets/reswell/schedule"
)

// fakeModel records everything the manager pushes into it
type fakeModel struct {
	name string

	status     Status
	wellType   WellType
	mode       ControlMode
	injPhase   int
	weights    [3]float64 // oil, gas, water
	maxSurface float64
	maxResv    float64
	targetBHP  float64
	targetTHP  float64

	refDepth    float64
	refDepthSet bool

	dofs    map[int]struct{} // keyed by global DOF index
	radii   map[int]float64
	factors map[int]float64

	clearCount int
	lifecycle  []string // lifecycle call log, in order

	// rates returned by ComputeTotalRatesForDof for assigned DOFs
	rate RateVector
}

func newFakeModel(name string) *fakeModel {
	return &fakeModel{
		name:     name,
		injPhase: -1,
		dofs:     make(map[int]struct{}),
		radii:    make(map[int]float64),
		factors:  make(map[int]float64),
		rate:     NewRateVector(),
	}
}

func (f *fakeModel) BeginSpec()       { f.lifecycle = append(f.lifecycle, "BeginSpec") }
func (f *fakeModel) SetName(n string) { f.name = n }
func (f *fakeModel) EndSpec()         { f.lifecycle = append(f.lifecycle, "EndSpec") }
func (f *fakeModel) Name() string     { return f.name }

func (f *fakeModel) SetWellStatus(s Status)       { f.status = s }
func (f *fakeModel) SetWellType(t WellType)       { f.wellType = t }
func (f *fakeModel) SetControlMode(m ControlMode) { f.mode = m }
func (f *fakeModel) SetInjectedPhaseIndex(p int)  { f.injPhase = p }
func (f *fakeModel) SetVolumetricPhaseWeights(oil, gas, water float64) {
	f.weights = [3]float64{oil, gas, water}
}
func (f *fakeModel) SetMaximumSurfaceRate(r float64)       { f.maxSurface = r }
func (f *fakeModel) SetMaximumReservoirRate(r float64)     { f.maxResv = r }
func (f *fakeModel) SetTargetBottomHolePressure(p float64) { f.targetBHP = p }
func (f *fakeModel) SetTargetTubingHeadPressure(p float64) { f.targetTHP = p }
func (f *fakeModel) SetReferenceDepth(d float64) {
	f.refDepth = d
	f.refDepthSet = true
}

func (f *fakeModel) Clear() {
	f.dofs = make(map[int]struct{})
	f.radii = make(map[int]float64)
	f.factors = make(map[int]float64)
	f.clearCount++
}

func (f *fakeModel) AddDof(ctx grid.ElementContext, dof int) {
	f.dofs[ctx.GlobalIndex(dof)] = struct{}{}
}

func (f *fakeModel) SetRadius(ctx grid.ElementContext, dof int, r float64) {
	f.radii[ctx.GlobalIndex(dof)] = r
}

func (f *fakeModel) SetConnectionTransmissibilityFactor(ctx grid.ElementContext, dof int, v float64) {
	f.factors[ctx.GlobalIndex(dof)] = v
}

func (f *fakeModel) BeginTimeStep()            { f.lifecycle = append(f.lifecycle, "BeginTimeStep") }
func (f *fakeModel) BeginIterationPreProcess() { f.lifecycle = append(f.lifecycle, "PreProcess") }
func (f *fakeModel) BeginIterationAccumulate(ctx grid.ElementContext, timeIdx int) {
	f.lifecycle = append(f.lifecycle, "Accumulate")
}
func (f *fakeModel) BeginIterationPostProcess() { f.lifecycle = append(f.lifecycle, "PostProcess") }
func (f *fakeModel) EndIteration()              { f.lifecycle = append(f.lifecycle, "EndIteration") }
func (f *fakeModel) EndTimeStep()               { f.lifecycle = append(f.lifecycle, "EndTimeStep") }

func (f *fakeModel) ComputeTotalRatesForDof(q RateVector, ctx grid.ElementContext, dof, timeIdx int) {
	q.Zero()
	if _, assigned := f.dofs[ctx.GlobalIndex(dof)]; assigned {
		copy(q, f.rate)
	}
}

// fakeSolver records auxiliary-equation registrations
type fakeSolver struct {
	registered []string
	clearCount int
}

func (s *fakeSolver) ClearAuxiliaryEquations() {
	s.registered = nil
	s.clearCount++
}

func (s *fakeSolver) AddAuxiliaryEquation(m Model) {
	s.registered = append(s.registered, m.Name())
}

// dofContext is a standalone ElementContext for driving rate queries
type dofContext struct {
	global, cartesian int
}

func (c dofContext) NumDof() int            { return 1 }
func (c dofContext) GlobalIndex(int) int    { return c.global }
func (c dofContext) CartesianIndex(int) int { return c.cartesian }

// newTestManager wires a manager to fresh fakes over the given mesh. The
// returned map fills in as the factory is invoked during Init.
func newTestManager(t *testing.T, mesh grid.Mesh) (*Manager, *fakeSolver, map[string]*fakeModel) {
	t.Helper()
	solver := &fakeSolver{}
	models := make(map[string]*fakeModel)
	factory := func(name string) Model {
		fm := newFakeModel(name)
		models[name] = fm
		return fm
	}
	mgr := NewManager(mesh, solver, factory, DefaultOptions(), testr.New(t))
	return mgr, solver, models
}

func mustGrid(t *testing.T, nx, ny, nz int) *grid.StructuredGrid {
	t.Helper()
	g, err := grid.NewStructuredGrid(nx, ny, nz)
	if err != nil {
		t.Fatalf("NewStructuredGrid failed: %v", err)
	}
	return g
}

// twoWellSchedule is the waterflood fixture: I1 injects water under rate
// control at 100 m³/d, P1 produces under a 200 bar BHP limit, each with
// one completion on a 5×5×1 grid.
func twoWellSchedule(steps int) *schedule.Schedule {
	injector := schedule.Well{
		Name:     "I1",
		Status:   schedule.StatusOpen,
		Injector: true,
		Injection: schedule.InjectionProperties{
			Phase:       schedule.InjectWater,
			Control:     schedule.InjectorRate,
			SurfaceRate: 100.0,
			BHPLimit:    500e5,
		},
		RefDepth:    schedule.DefaultedValue(),
		Completions: []schedule.Completion{{
			I: 1, J: 1, K: 0,
			Diameter:               schedule.Specified(0.2),
			TransmissibilityFactor: schedule.DefaultedValue(),
		}},
	}
	producer := schedule.Well{
		Name:     "P1",
		Status:   schedule.StatusOpen,
		Producer: true,
		Production: schedule.ProductionProperties{
			Control:  schedule.ProducerBHP,
			BHPLimit: 200e5,
		},
		RefDepth:    schedule.DefaultedValue(),
		Completions: []schedule.Completion{{
			I: 3, J: 3, K: 0,
			Diameter:               schedule.DefaultedValue(),
			TransmissibilityFactor: schedule.DefaultedValue(),
		}},
	}

	sched := &schedule.Schedule{NX: 5, NY: 5, NZ: 1}
	for i := 0; i < steps; i++ {
		sched.Steps = append(sched.Steps, []schedule.Well{injector, producer})
	}
	return sched
}
