package detector

import (
	"errors"
	"testing"
	"time"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/capture/capturetest"
	"fishing-tool/internal/geom"
	"fishing-tool/internal/pkg/sleeper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counting 记录截图次数和区域
type counting struct {
	capture.Provider
	regions []geom.Region
}

func (c *counting) Capture(r geom.Region) (*capture.Grid, error) {
	c.regions = append(c.regions, r)
	return c.Provider.Capture(r)
}

func waitParams() *Params {
	p := testParams(geom.Region{Top: 0, Left: 0, Width: 400, Height: 400})
	p.MaxWaitDuration = time.Second
	return p
}

func TestWaitForEvent(t *testing.T) {
	tests := []struct {
		name     string
		means    []float64
		want     Outcome
		captures int
	}{
		{"appeared", []float64{100, 100, 100.3, 101.5}, Appeared, 4},
		{"faded", []float64{100, 100, 95}, Faded, 3},
		{"small drift", []float64{100, 100.5, 99, 97, 101.25}, Appeared, 5},
		{"timed out", []float64{100}, TimedOut, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := sleeper.NewMockClock(t0)
			provider := &counting{Provider: capturetest.Sequence(tt.means, clock, 100*time.Millisecond)}

			outcome, err := NewEventWaiter(waitParams(), provider, clock).WaitForEvent(geom.Pt(200, 200), 40)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
			assert.Len(t, provider.regions, tt.captures)
		})
	}
}

func TestWaitForEventTimesOutNotEarly(t *testing.T) {
	clock := sleeper.NewMockClock(t0)
	provider := capturetest.Sequence([]float64{100}, clock, 30*time.Millisecond)
	params := waitParams()

	outcome, err := NewEventWaiter(params, provider, clock).WaitForEvent(geom.Pt(200, 200), 40)
	require.NoError(t, err)
	assert.Equal(t, TimedOut, outcome)

	// 基准截图本身耗时30ms, 截止时间从基准之后开始算
	elapsed := clock.Now().Sub(t0)
	assert.GreaterOrEqual(t, elapsed, params.MaxWaitDuration+30*time.Millisecond)
	assert.Less(t, elapsed, params.MaxWaitDuration+60*time.Millisecond+time.Millisecond)
	assert.Empty(t, clock.Sleeps(), "等待水花时不应主动休眠")
}

func TestWaitForEventWatchesSquareAroundCenter(t *testing.T) {
	clock := sleeper.NewMockClock(t0)
	provider := &counting{Provider: capturetest.Sequence([]float64{100, 110}, clock, time.Millisecond)}

	_, err := NewEventWaiter(waitParams(), provider, clock).WaitForEvent(geom.Pt(50.4, 60.6), 40)
	require.NoError(t, err)

	want := geom.Region{Top: 21, Left: 10, Width: 80, Height: 80}
	require.Len(t, provider.regions, 2)
	assert.Equal(t, want, provider.regions[0])
	assert.Equal(t, want, provider.regions[1])
}

func TestWaitForEventCaptureError(t *testing.T) {
	clock := sleeper.NewMockClock(t0)
	calls := 0
	provider := capture.ProviderFunc(func(r geom.Region) (*capture.Grid, error) {
		calls++
		clock.Advance(time.Millisecond)
		if calls > 2 {
			return nil, errors.New("device lost")
		}
		return capture.NewGrid(r, capturetest.WithMean(r.Width, r.Height, 100)), nil
	})

	_, err := NewEventWaiter(waitParams(), provider, clock).WaitForEvent(geom.Pt(200, 200), 40)
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "appeared", Appeared.String())
	assert.Equal(t, "faded", Faded.String())
	assert.Equal(t, "timed_out", TimedOut.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}
