package wells

import (
	"fmt"
	"math"

	"github.com/notargets/reswell/grid"
	"github.com/notargets/reswell/schedule"
)

// applyStepParameters pushes the per-completion parameters which do not
// change the topology of the linearized system: reference depth,
// perforation radius, connection transmissibility factor. Runs every step
// regardless of whether the topology changed.
func (m *Manager) applyStepParameters(sched *schedule.Schedule, step int, compMap completionMap) error {
	// Set the reference depth for all wells which specify one; defaulted
	// depths keep the well model's own value.
	for _, deckWell := range sched.WellsAt(step) {
		wellIdx, ok := m.wellNameToIndex[deckWell.Name]
		if !ok {
			continue
		}
		if !deckWell.RefDepth.Defaulted {
			m.wells[wellIdx].SetReferenceDepth(deckWell.RefDepth.V)
		}
	}

	// Associate the completion parameters with the assigned DOFs
	err := m.mesh.EachLocalElement(func(ctx grid.ElementContext) error {
		for dof := 0; dof < ctx.NumDof(); dof++ {
			entry, ok := compMap[ctx.CartesianIndex(dof)]
			if !ok {
				continue
			}
			well := m.wells[entry.wellIdx]

			// A defaulted diameter keeps the well model's computed
			// perforation radius.
			if d := entry.completion.Diameter; !d.Defaulted {
				well.SetRadius(ctx, dof, 0.5*d.V)
			}

			// Overwrite the automatically computed connection
			// transmissibility factor only with a finite, strictly
			// positive value from the schedule.
			if ctf := entry.completion.TransmissibilityFactor; !ctf.Defaulted && isFinitePositive(ctf.V) {
				well.SetConnectionTransmissibilityFactor(ctx, dof, ctf.V)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("apply completion parameters: %w", err)
	}
	return nil
}

func isFinitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// applyStepControls translates the schedule's status, type, control mode
// and target values for every well active at the step into the well
// models' internal control state. Unsupported schedule features fail the
// step with a named error; they are never silently approximated.
func (m *Manager) applyStepControls(sched *schedule.Schedule, step int) error {
	for _, deckWell := range sched.WellsAt(step) {
		wellIdx, ok := m.wellNameToIndex[deckWell.Name]
		if !ok {
			continue
		}
		well := m.wells[wellIdx]

		switch deckWell.Status {
		case schedule.StatusAuto, schedule.StatusOpen:
			// Auto means open for now
			well.SetWellStatus(Open)
		case schedule.StatusStop:
			well.SetWellStatus(Closed)
		case schedule.StatusShut:
			well.SetWellStatus(Shut)
		}

		// An active well must be either an injector or a producer, never
		// both or neither.
		if deckWell.Injector == deckWell.Producer {
			return &InconsistentWellStateError{Well: deckWell.Name}
		}

		if deckWell.Injector {
			if err := m.applyInjectorControls(well, &deckWell); err != nil {
				return err
			}
		} else {
			if err := m.applyProducerControls(well, &deckWell); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Manager) applyInjectorControls(well Model, deckWell *schedule.Well) error {
	well.SetWellType(Injector)
	props := &deckWell.Injection

	// The injected phase selects both the phase index and a one-hot
	// weight vector.
	switch props.Phase {
	case schedule.InjectWater:
		well.SetInjectedPhaseIndex(PhaseWater)
		well.SetVolumetricPhaseWeights(0.0, 0.0, 1.0)
	case schedule.InjectOil:
		well.SetInjectedPhaseIndex(PhaseOil)
		well.SetVolumetricPhaseWeights(1.0, 0.0, 0.0)
	case schedule.InjectGas:
		well.SetInjectedPhaseIndex(PhaseGas)
		well.SetVolumetricPhaseWeights(0.0, 1.0, 0.0)
	case schedule.InjectMulti:
		return &UnsupportedFeatureError{Well: deckWell.Name, Feature: "multi-phase injection wells"}
	default:
		return fmt.Errorf("well %q: unknown injected phase %d", deckWell.Name, props.Phase)
	}

	switch props.Control {
	case schedule.InjectorRate:
		well.SetControlMode(VolumetricSurfaceRate)
	case schedule.InjectorReservoirRate:
		well.SetControlMode(VolumetricReservoirRate)
	case schedule.InjectorBHP:
		well.SetControlMode(BottomHolePressure)
	case schedule.InjectorTHP:
		well.SetControlMode(TubingHeadPressure)
	case schedule.InjectorGroup:
		return &UnsupportedFeatureError{Well: deckWell.Name, Feature: "well groups"}
	default:
		return &UndefinedControlModeError{Well: deckWell.Name}
	}

	well.SetMaximumSurfaceRate(props.SurfaceRate)
	well.SetMaximumReservoirRate(props.ReservoirRate)
	well.SetTargetBottomHolePressure(props.BHPLimit)

	// THP targets are not yet wired to the schedule's limit
	well.SetTargetTubingHeadPressure(m.opts.InjectorTHPSentinel)
	return nil
}

func (m *Manager) applyProducerControls(well Model, deckWell *schedule.Well) error {
	well.SetWellType(Producer)
	props := &deckWell.Production

	// The control mode selects the internal mode, the phase-weight vector
	// and the rate target used.
	switch props.Control {
	case schedule.ProducerOilRate:
		well.SetControlMode(VolumetricSurfaceRate)
		well.SetVolumetricPhaseWeights(1.0, 0.0, 0.0)
		well.SetMaximumSurfaceRate(props.OilRate)
	case schedule.ProducerGasRate:
		well.SetControlMode(VolumetricSurfaceRate)
		well.SetVolumetricPhaseWeights(0.0, 1.0, 0.0)
		well.SetMaximumSurfaceRate(props.GasRate)
	case schedule.ProducerWaterRate:
		well.SetControlMode(VolumetricSurfaceRate)
		well.SetVolumetricPhaseWeights(0.0, 0.0, 1.0)
		well.SetMaximumSurfaceRate(props.WaterRate)
	case schedule.ProducerLiquidRate:
		well.SetControlMode(VolumetricSurfaceRate)
		well.SetVolumetricPhaseWeights(1.0, 0.0, 1.0)
		well.SetMaximumSurfaceRate(props.LiquidRate)
	case schedule.ProducerVoidageRate:
		well.SetControlMode(VolumetricReservoirRate)
		well.SetVolumetricPhaseWeights(1.0, 1.0, 1.0)
		well.SetMaximumSurfaceRate(props.VoidageRate)
	case schedule.ProducerBHP:
		well.SetControlMode(BottomHolePressure)
	case schedule.ProducerTHP:
		well.SetControlMode(TubingHeadPressure)
	case schedule.ProducerCombinedRate:
		return &UnsupportedFeatureError{Well: deckWell.Name, Feature: "linearly combined rates"}
	case schedule.ProducerGroup:
		return &UnsupportedFeatureError{Well: deckWell.Name, Feature: "well groups"}
	default:
		return &UndefinedControlModeError{Well: deckWell.Name}
	}

	// The BHP limit doubles as the switching limit for rate-controlled
	// producers, so it is always set.
	well.SetTargetBottomHolePressure(props.BHPLimit)

	// THP targets are not yet wired to the schedule's limit
	well.SetTargetTubingHeadPressure(m.opts.ProducerTHPSentinel)
	return nil
}
