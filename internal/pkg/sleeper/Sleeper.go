package sleeper

import (
	"time"
)

// Clock 所有阻塞等待都走这里, 便于测试时替换
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) Sleep(d time.Duration) {
	SleepBusyLoop(d)
}

// SleepBusyLoop 大头交给time.Sleep, 最后500毫秒忙循环以保证精度
func SleepBusyLoop(val time.Duration) {
	start := time.Now()

	if val > 500*time.Millisecond {
		time.Sleep(val - 500*time.Millisecond)
	}
	if time.Since(start) > val {
		return
	}

	for time.Since(start) < val {
	}
}
