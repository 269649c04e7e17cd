package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWellNamesCoversHorizon(t *testing.T) {
	sched := &Schedule{
		NX: 10, NY: 10, NZ: 3,
		Steps: [][]Well{
			{{Name: "I1"}, {Name: "P1"}},
			{{Name: "P1"}, {Name: "P2"}},
			{},
			{{Name: "I1"}, {Name: "P3"}},
		},
	}

	// Distinct names over the whole horizon, in first-appearance order
	assert.Equal(t, []string{"I1", "P1", "P2", "P3"}, sched.WellNames())
	assert.Equal(t, 4, sched.NumSteps())
}

func TestWellsAtClampsHorizon(t *testing.T) {
	sched := &Schedule{
		Steps: [][]Well{{{Name: "W1"}}},
	}
	assert.Len(t, sched.WellsAt(0), 1)
	assert.Nil(t, sched.WellsAt(-1))
	assert.Nil(t, sched.WellsAt(1))
}

func TestCartesianIndex(t *testing.T) {
	sched := &Schedule{NX: 10, NY: 5, NZ: 2}
	assert.Equal(t, 0, sched.CartesianIndex(0, 0, 0))
	assert.Equal(t, 7, sched.CartesianIndex(7, 0, 0))
	assert.Equal(t, 10, sched.CartesianIndex(0, 1, 0))
	assert.Equal(t, 50, sched.CartesianIndex(0, 0, 1))
	assert.Equal(t, 50+3*10+2, sched.CartesianIndex(2, 3, 1))
}

func TestValue(t *testing.T) {
	v := Specified(3.5)
	assert.False(t, v.Defaulted)
	assert.Equal(t, 3.5, v.V)

	d := DefaultedValue()
	assert.True(t, d.Defaulted)
}
