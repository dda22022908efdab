package utils

import (
	"context"
	"time"

	"fishing-tool/internal/pkg/sleeper"
)

// Countdown 在total时间内每隔step回调一次剩余时间
// 正常走完返回true, ctx被取消时立即返回false
func Countdown(ctx context.Context, clock sleeper.Clock, total time.Duration, step time.Duration, f func(remaining time.Duration)) bool {
	deadline := clock.Now().Add(total)
	for {
		if ctx.Err() != nil {
			return false
		}

		remaining := deadline.Sub(clock.Now())
		if remaining <= 0 {
			return true
		}
		if f != nil {
			f(remaining)
		}
		clock.Sleep(min(step, remaining))
	}
}
