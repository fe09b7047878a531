package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepOrder(t *testing.T) {
	for i, s := range Steps {
		assert.Equal(t, i, s.Index())
		got, ok := StepAt(i)
		assert.True(t, ok)
		assert.Equal(t, s, got)
		assert.True(t, s.Valid())
		assert.NotEmpty(t, s.Label())
	}
	assert.Equal(t, -1, Step("payment").Index())
	assert.False(t, Step("").Valid())

	_, ok := StepAt(5)
	assert.False(t, ok)
	_, ok = StepAt(-1)
	assert.False(t, ok)
}

func TestTransitionTable(t *testing.T) {
	assert.True(t, CanTransition(StepService, StepDoctor))
	assert.True(t, CanTransition(StepDoctor, StepSchedule))
	assert.True(t, CanTransition(StepSchedule, StepDetails))
	assert.True(t, CanTransition(StepDetails, StepConfirm))
	assert.True(t, CanTransition(StepConfirm, StepDetails))

	assert.False(t, CanTransition(StepService, StepSchedule))
	assert.False(t, CanTransition(StepDoctor, StepConfirm))
	assert.False(t, CanTransition(StepConfirm, StepService))

	prev, ok := StepConfirm.Previous()
	assert.True(t, ok)
	assert.Equal(t, StepDetails, prev)
	_, ok = StepService.Previous()
	assert.False(t, ok)
}

func TestProgressOf(t *testing.T) {
	p := ProgressOf(StepService)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 5, p.Total)
	assert.InDelta(t, 20.0, p.Percent, 0.001)

	p = ProgressOf(StepConfirm)
	assert.Equal(t, 5, p.Number)
	assert.Equal(t, "Confirm", p.Label)
	assert.InDelta(t, 100.0, p.Percent, 0.001)
}
