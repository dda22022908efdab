package detector

import (
	"fmt"
	"log"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/geom"
	"fishing-tool/internal/pkg/sleeper"
)

// Outcome 等待水花的终态
type Outcome int32

const (
	Appeared Outcome = iota + 1 // 检测到水花
	Faded                       // 浮漂消失
	TimedOut                    // 超时
)

func (o Outcome) String() string {
	switch o {
	case Appeared:
		return "appeared"
	case Faded:
		return "faded"
	case TimedOut:
		return "timed_out"
	}
	return fmt.Sprintf("outcome(%d)", int32(o))
}

// EventWaiter 盯住浮漂周围的固定区域, 直到均值突变、变暗或超时
type EventWaiter struct {
	params  *Params
	capture capture.Provider
	clock   sleeper.Clock
}

func NewEventWaiter(params *Params, provider capture.Provider, clock sleeper.Clock) *EventWaiter {
	return &EventWaiter{
		params:  params,
		capture: provider,
		clock:   clock,
	}
}

// WaitForEvent 截图之间不加间隔, 以截图耗时作为轮询周期
func (w *EventWaiter) WaitForEvent(center geom.Point, radius int) (Outcome, error) {
	region := geom.SquareAround(center.Image(), radius)

	baseline, err := w.capture.Capture(region)
	if err != nil {
		return 0, fmt.Errorf("截取水花基准画面失败: %w", err)
	}
	baselineMean := baseline.Mean()

	deadline := w.clock.Now().Add(w.params.MaxWaitDuration)
	for w.clock.Now().Before(deadline) {
		current, err := w.capture.Capture(region)
		if err != nil {
			return 0, fmt.Errorf("截取水花画面失败: %w", err)
		}

		delta := current.Mean() - baselineMean
		if delta > w.params.AppearThreshold {
			log.Printf("[等待器] 检测到水花 变化量 %.2f\n", delta)
			return Appeared, nil
		} else if delta < w.params.FadeThreshold {
			log.Printf("[等待器] 浮漂已消失 变化量 %.2f\n", delta)
			return Faded, nil
		}
	}

	log.Println("[等待器] 等待水花超时")
	return TimedOut, nil
}
