package fishing

import (
	"errors"
	"image"
	"testing"
	"time"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/capture/capturetest"
	"fishing-tool/internal/geom"
	"fishing-tool/internal/history"
	"fishing-tool/internal/input"
	"fishing-tool/internal/input/inputtest"
	"fishing-tool/internal/pkg/sleeper"
	"fishing-tool/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryHistory struct {
	casts []history.Cast
}

func (m *memoryHistory) Record(c *history.Cast) error {
	m.casts = append(m.casts, *c)
	return nil
}

// 浮漂落在(200,150), 水花检测框为 (160,110)-(240,190)
var (
	searchRegion = geom.Region{Top: 20, Left: 20, Width: 360, Height: 260}
	waitRegion   = geom.Region{Top: 110, Left: 160, Width: 80, Height: 80}
)

func water() *image.RGBA {
	return capturetest.Fill(400, 300, 50)
}

func withBobber() *image.RGBA {
	img := water()
	capturetest.FillRect(img, image.Rect(190, 140, 210, 160), 250)
	return img
}

func withSplash() *image.RGBA {
	img := withBobber()
	capturetest.FillRect(img, image.Rect(160, 110, 200, 130), 150)
	return img
}

type fixture struct {
	clock    *sleeper.MockClock
	screen   *capturetest.Screen
	recorder *inputtest.Recorder
	history  *memoryHistory
	sctx     *strategy.StrategyContext
}

func newFixture(t *testing.T, after capturetest.Frame) *fixture {
	t.Helper()
	f := &fixture{
		clock:    sleeper.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		recorder: &inputtest.Recorder{},
		history:  &memoryHistory{},
	}
	f.screen = capturetest.NewScreen(water(), after)
	f.screen.Clock = f.clock
	f.screen.Step = 50 * time.Millisecond

	params := DefaultParams()
	params.SearchRegion = searchRegion
	params.ProbeRadius = 10

	config := &strategy.ExecutionConfig{
		Capture: f.screen,
		Input:   input.NewTracked(f.recorder),
		Clock:   f.clock,
		Params:  params,
		Options: strategy.Options{CastKey: "1", KeyHold: 100 * time.Millisecond},
		History: f.history,
	}
	f.sctx = strategy.NewStrategyContext(config)
	return f
}

// press 按键被按下时让屏幕切换到抛竿后的画面
type castTrigger struct {
	*inputtest.Recorder
	screen *capturetest.Screen
	key    string
}

func (c *castTrigger) PressKey(key string) {
	c.Recorder.PressKey(key)
	if key == c.key {
		c.screen.Trigger()
	}
}

func (f *fixture) run(t *testing.T, s strategy.Strategy) int32 {
	t.Helper()
	f.sctx.Input = input.NewTracked(&castTrigger{Recorder: f.recorder, screen: f.screen, key: "1"})
	require.NoError(t, s.Init(f.sctx))
	return s.Execute(f.sctx)
}

func TestFishingCycleCatches(t *testing.T) {
	f := newFixture(t, func(r geom.Region, n int) *image.RGBA {
		if r == waitRegion && n >= 3 {
			return withSplash()
		}
		return withBobber()
	})

	reason := f.run(t, NewFishingStrategy(MODE_STANDARD, LootShiftRight))
	assert.Equal(t, strategy.STRATEGY_REASON_SUCCESS, reason)

	assert.Equal(t, []string{
		"down 1", "up 1",
		"move 0,-50",
		"move 200,150",
		"move 200,150", "down shift", "press right", "release right", "up shift",
	}, f.recorder.Events())
	assert.Empty(t, f.recorder.Down())

	require.Len(t, f.history.casts, 1)
	cast := f.history.casts[0]
	assert.True(t, cast.Found)
	assert.Equal(t, history.OutcomeAppeared, cast.Outcome)
	assert.Equal(t, 9, cast.Hits)
	assert.Equal(t, "钓鱼-标准", cast.Strategy)
	assert.InDelta(t, 200, cast.Position.X, 1e-9)
	assert.InDelta(t, 150, cast.Position.Y, 1e-9)
	assert.Positive(t, cast.Duration)

	sleeps := f.clock.Sleeps()
	assert.Equal(t, 100*time.Millisecond, sleeps[0])
	assert.Equal(t, 2*time.Second, sleeps[1])
	assert.Equal(t, []time.Duration{LootDelay, AimDelay, 100 * time.Millisecond, 100 * time.Millisecond}, sleeps[len(sleeps)-4:])
}

func TestFishingCycleAutoLootPlainClick(t *testing.T) {
	f := newFixture(t, func(r geom.Region, n int) *image.RGBA {
		if r == waitRegion && n >= 1 {
			return withSplash()
		}
		return withBobber()
	})

	reason := f.run(t, NewFishingStrategy(MODE_AUTO_LOOT, LootRight))
	assert.Equal(t, strategy.STRATEGY_REASON_SUCCESS, reason)

	events := f.recorder.Events()
	assert.Equal(t, []string{"move 200,150", "press right", "release right"}, events[len(events)-3:])
	assert.NotContains(t, events, "down shift")
}

func TestFishingCycleFaded(t *testing.T) {
	f := newFixture(t, func(r geom.Region, n int) *image.RGBA {
		if r == waitRegion && n >= 2 {
			return water()
		}
		return withBobber()
	})

	reason := f.run(t, NewFishingStrategy(MODE_STANDARD, LootShiftRight))
	assert.Equal(t, strategy.STRATEGY_REASON_FAIL, reason)
	assert.Equal(t, []string{"down 1", "up 1", "move 0,-50"}, f.recorder.Events())

	require.Len(t, f.history.casts, 1)
	assert.Equal(t, history.OutcomeFaded, f.history.casts[0].Outcome)
}

func TestFishingCycleTimedOut(t *testing.T) {
	f := newFixture(t, func(geom.Region, int) *image.RGBA { return withBobber() })
	start := f.clock.Now()

	reason := f.run(t, NewFishingStrategy(MODE_STANDARD, LootShiftRight))
	assert.Equal(t, strategy.STRATEGY_REASON_TIMEOUT, reason)
	assert.GreaterOrEqual(t, f.clock.Now().Sub(start), 30*time.Second)

	require.Len(t, f.history.casts, 1)
	assert.Equal(t, history.OutcomeTimedOut, f.history.casts[0].Outcome)
}

func TestFishingCycleMiss(t *testing.T) {
	f := newFixture(t, func(geom.Region, int) *image.RGBA { return water() })

	reason := f.run(t, NewFishingStrategy(MODE_STANDARD, LootShiftRight))
	assert.Equal(t, strategy.STRATEGY_REASON_MISS, reason)
	assert.Equal(t, []string{"down 1", "up 1"}, f.recorder.Events())

	require.Len(t, f.history.casts, 1)
	assert.False(t, f.history.casts[0].Found)
	assert.Equal(t, history.OutcomeNotFound, f.history.casts[0].Outcome)
	for _, r := range f.screen.Requests() {
		assert.True(t, searchRegion.Contains(r))
	}
}

func TestFishingCycleTraceCursor(t *testing.T) {
	f := newFixture(t, func(r geom.Region, n int) *image.RGBA {
		if r == waitRegion && n >= 1 {
			return water()
		}
		return withBobber()
	})
	f.sctx.Options.TraceCursor = true

	reason := f.run(t, NewFishingStrategy(MODE_STANDARD, LootShiftRight))
	assert.Equal(t, strategy.STRATEGY_REASON_FAIL, reason)

	events := f.recorder.Events()
	// 抛竿 + 9个命中点 + 检测框4个角 + 挪开
	require.Len(t, events, 2+9+4+1)
	assert.Equal(t, []string{"move 160,110", "move 240,110", "move 240,190", "move 160,190", "move 0,-50"}, events[11:])
}

func TestFishingCycleWithoutHistory(t *testing.T) {
	f := newFixture(t, func(geom.Region, int) *image.RGBA { return water() })
	f.sctx.History = nil

	reason := f.run(t, NewFishingStrategy(MODE_STANDARD, LootShiftRight))
	assert.Equal(t, strategy.STRATEGY_REASON_MISS, reason)
}

func TestFishingCycleRecordsCaptureErrors(t *testing.T) {
	tests := []struct {
		name  string
		fail  func(r geom.Region) bool
		found bool
	}{
		{"baseline", func(r geom.Region) bool { return r == searchRegion }, false},
		{"splash", func(r geom.Region) bool { return r == waitRegion }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(geom.Region, int) *image.RGBA { return withBobber() })
			f.sctx.Capture = capture.ProviderFunc(func(r geom.Region) (*capture.Grid, error) {
				if tt.fail(r) {
					return nil, errors.New("device lost")
				}
				return f.screen.Capture(r)
			})

			reason := f.run(t, NewFishingStrategy(MODE_STANDARD, LootShiftRight))
			assert.Equal(t, strategy.STRATEGY_REASON_OTHER, reason)
			assert.Empty(t, f.recorder.Down())

			require.Len(t, f.history.casts, 1)
			cast := f.history.casts[0]
			assert.Equal(t, history.OutcomeError, cast.Outcome)
			assert.Equal(t, tt.found, cast.Found)
		})
	}
}

func TestFishingInitRejectsInvalidParams(t *testing.T) {
	f := newFixture(t, nil)
	f.sctx.Params.FadeThreshold = 1

	assert.Error(t, NewFishingStrategy(MODE_STANDARD, LootShiftRight).Init(f.sctx))
}

func TestDefaultParamsValid(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
}
