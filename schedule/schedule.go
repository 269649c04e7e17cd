// Package schedule holds the report-step indexed well and completion data
// consumed by the well manager. It is the contract a deck parser fills in;
// the parser itself lives outside this module.
package schedule

// Value is a scalar that a schedule may leave defaulted. Translators must
// query Defaulted explicitly instead of treating a zero value as "unset".
type Value struct {
	V         float64
	Defaulted bool
}

// Specified returns a Value carrying an explicit scalar.
func Specified(v float64) Value {
	return Value{V: v}
}

// DefaultedValue returns a Value marked as not provided by the schedule.
func DefaultedValue() Value {
	return Value{Defaulted: true}
}

// WellStatus is the schedule-side status of a well at a report step
type WellStatus uint8

const (
	StatusAuto WellStatus = iota // Treated as Open
	StatusOpen
	StatusStop
	StatusShut
)

// InjectedPhase selects what an injection well pumps into the reservoir
type InjectedPhase uint8

const (
	InjectWater InjectedPhase = iota
	InjectOil
	InjectGas
	InjectMulti // Declared but unsupported; the translator rejects it
)

// InjectorControl is the schedule-side control mode of an injector
type InjectorControl uint8

const (
	InjectorRate          InjectorControl = iota // Surface volumetric rate
	InjectorReservoirRate                        // Reservoir volumetric rate
	InjectorBHP
	InjectorTHP
	InjectorGroup // Declared but unsupported
	InjectorUndefined
)

// ProducerControl is the schedule-side control mode of a producer
type ProducerControl uint8

const (
	ProducerOilRate ProducerControl = iota
	ProducerGasRate
	ProducerWaterRate
	ProducerLiquidRate   // Oil + water
	ProducerCombinedRate // Linearly combined rates; declared but unsupported
	ProducerVoidageRate  // Reservoir voidage rate
	ProducerBHP
	ProducerTHP
	ProducerGroup // Declared but unsupported
	ProducerUndefined
)

// Completion is a single perforation of a well into one grid cell.
// I, J, K are zero-based logical cartesian coordinates.
type Completion struct {
	I, J, K int

	// Wellbore diameter at this perforation; defaulted means the well
	// model keeps its own computed value.
	Diameter Value

	// Connection transmissibility factor override. Only a finite,
	// strictly positive specified value replaces the automatically
	// computed factor.
	TransmissibilityFactor Value
}

// InjectionProperties are the injector controls of a well at one report step
type InjectionProperties struct {
	Phase   InjectedPhase
	Control InjectorControl

	SurfaceRate   float64 // Maximum surface injection rate
	ReservoirRate float64 // Maximum reservoir injection rate
	BHPLimit      float64
	THPLimit      float64
}

// ProductionProperties are the producer controls of a well at one report step
type ProductionProperties struct {
	Control ProducerControl

	OilRate     float64
	GasRate     float64
	WaterRate   float64
	LiquidRate  float64
	VoidageRate float64
	BHPLimit    float64
	THPLimit    float64
}

// Well is the schedule's view of one well at one report step
type Well struct {
	Name   string
	Status WellStatus

	// Exactly one of these must be set for an active well
	Injector bool
	Producer bool

	Injection  InjectionProperties
	Production ProductionProperties

	// Reference depth for bottom-hole pressure; defaulted means the well
	// model keeps its own default.
	RefDepth Value

	Completions []Completion
}

// Schedule is the full time horizon of well configurations plus the grid
// extents needed to linearize completion coordinates.
type Schedule struct {
	NX, NY, NZ int

	// Steps[i] lists the wells active at report step i
	Steps [][]Well
}

// NumSteps returns the number of report steps in the schedule horizon
func (s *Schedule) NumSteps() int {
	return len(s.Steps)
}

// WellsAt returns the wells active at the given report step. Steps outside
// the horizon have no active wells.
func (s *Schedule) WellsAt(step int) []Well {
	if step < 0 || step >= len(s.Steps) {
		return nil
	}
	return s.Steps[step]
}

// WellNames returns the distinct well names appearing anywhere in the
// schedule horizon, in order of first appearance.
func (s *Schedule) WellNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, step := range s.Steps {
		for _, w := range step {
			if _, ok := seen[w.Name]; ok {
				continue
			}
			seen[w.Name] = struct{}{}
			names = append(names, w.Name)
		}
	}
	return names
}

// CartesianIndex linearizes a logical (i,j,k) coordinate
func (s *Schedule) CartesianIndex(i, j, k int) int {
	return i + j*s.NX + k*s.NX*s.NY
}
