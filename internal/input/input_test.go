package input_test

import (
	"testing"
	"time"

	"fishing-tool/internal/input"
	"fishing-tool/internal/input/inputtest"
	"fishing-tool/internal/pkg/sleeper"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type panicClock struct{ sleeper.Clock }

func (panicClock) Sleep(time.Duration) { panic("interrupted") }

func TestTapPressesAndReleases(t *testing.T) {
	rec := &inputtest.Recorder{}
	clock := sleeper.NewMockClock(t0)

	input.Tap(rec, clock, "1", 100*time.Millisecond)

	assert.Equal(t, []string{"down 1", "up 1"}, rec.Events())
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, clock.Sleeps())
}

func TestModifiedClickOrder(t *testing.T) {
	rec := &inputtest.Recorder{}
	clock := sleeper.NewMockClock(t0)

	input.ModifiedClick(rec, clock, "shift", input.ButtonRight, 300, 200, 100*time.Millisecond)

	assert.Equal(t, []string{
		"move 300,200",
		"down shift",
		"press right",
		"release right",
		"up shift",
	}, rec.Events())
	assert.Empty(t, rec.Down())
}

func TestModifiedClickWithoutModifier(t *testing.T) {
	rec := &inputtest.Recorder{}
	input.ModifiedClick(rec, sleeper.NewMockClock(t0), "", input.ButtonRight, 1, 2, 0)

	assert.Equal(t, []string{"move 1,2", "press right", "release right"}, rec.Events())
}

func TestModifierReleasedOnPanic(t *testing.T) {
	rec := &inputtest.Recorder{}

	assert.Panics(t, func() {
		input.ModifiedClick(rec, panicClock{}, "shift", input.ButtonRight, 0, 0, time.Second)
	})
	assert.Empty(t, rec.Down())

	assert.Panics(t, func() {
		input.Tap(rec, panicClock{}, "1", time.Second)
	})
	assert.Empty(t, rec.Down())
}

func TestTrackedReleaseHeld(t *testing.T) {
	rec := &inputtest.Recorder{}
	tracked := input.NewTracked(rec)

	tracked.PressKey("shift")
	tracked.PressKey("ctrl")
	tracked.ReleaseKey("ctrl")
	tracked.PressButton(input.ButtonRight)
	assert.Equal(t, 2, tracked.Held())
	assert.ElementsMatch(t, []string{"shift", input.ButtonRight}, rec.Down())

	tracked.ReleaseHeld()
	assert.Equal(t, 0, tracked.Held())
	assert.Empty(t, rec.Down())

	before := len(rec.Events())
	tracked.ReleaseHeld()
	assert.Len(t, rec.Events(), before)
}

func TestReleaseAll(t *testing.T) {
	rec := &inputtest.Recorder{}
	input.ReleaseAll(rec)

	assert.Equal(t, []string{
		"release left",
		"release right",
		"up shift",
		"up ctrl",
		"up alt",
	}, rec.Events())
}
