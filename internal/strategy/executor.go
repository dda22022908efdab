package strategy

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/detector"
	"fishing-tool/internal/input"
	"fishing-tool/internal/pkg/sleeper"
	"fishing-tool/internal/pkg/utils"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Executor struct {
	result  ExecutionResult
	printer *message.Printer
}

type ExecutionConfig struct {
	Window  Window
	Capture capture.Provider
	Input   *input.Tracked
	Clock   sleeper.Clock
	Params  *detector.Params
	Options Options
	History Recorder

	Times    int           // 要执行的次数, 0表示不限
	Interval time.Duration // 每轮开始前的倒计时
}

type ExecutionResult struct {
	Times   int
	Success int
	Fail    int
	Timeout int
	Miss    int
}

func NewExecutor() *Executor {
	return &Executor{
		printer: message.NewPrinter(language.SimplifiedChinese),
	}
}

func (e *Executor) Result() ExecutionResult {
	return e.result
}

// Execute 同步执行, 只在两轮之间的倒计时里响应ctx取消
// 返回时会松开所有仍处于按下状态的键
func (e *Executor) Execute(ctx context.Context, config *ExecutionConfig, strategy Strategy) error {
	defer config.Input.ReleaseHeld()

	if err := strategy.Init(NewStrategyContext(config)); err != nil {
		return fmt.Errorf("初始化方案 %s-%s 失败: %w", strategy.GetName(), strategy.GetMode(), err)
	}

	for config.Times == 0 || e.result.Times < config.Times {
		round := e.result.Times + 1
		ok := utils.Countdown(ctx, config.Clock, config.Interval, time.Second, func(remaining time.Duration) {
			log.Printf("[执行器] %d秒后开始第%d轮\n", int(math.Ceil(remaining.Seconds())), round)
		})
		if !ok {
			log.Println("[执行器] 收到停止信号, 已停止执行")
			return nil
		}

		if config.Window != nil {
			config.Window.Active()
		}

		start := config.Clock.Now()
		log.Printf("[执行器] 开始执行第%d轮\n", round)

		reason := strategy.Execute(NewStrategyContext(config))
		e.record(reason)

		elapsed := config.Clock.Now().Sub(start)
		log.Printf("[执行器] 本轮耗时%.1f秒 结果: %s\n", elapsed.Seconds(), ReasonText(reason))
		log.Print(e.printer.Sprintf("[执行器] 已执行%d轮 成功%d轮 失败%d轮 超时%d轮 未找到浮漂%d轮\n",
			e.result.Times, e.result.Success, e.result.Fail, e.result.Timeout, e.result.Miss))
	}
	return nil
}

func (e *Executor) record(reason int32) {
	switch reason {
	case STRATEGY_REASON_SUCCESS:
		e.result.Success = e.result.Success + 1
	case STRATEGY_REASON_TIMEOUT:
		e.result.Timeout = e.result.Timeout + 1
	case STRATEGY_REASON_MISS:
		e.result.Miss = e.result.Miss + 1
	default:
		e.result.Fail = e.result.Fail + 1
	}
	e.result.Times = e.result.Times + 1
}

func ReasonText(reason int32) string {
	switch reason {
	case STRATEGY_REASON_SUCCESS:
		return "成功"
	case STRATEGY_REASON_FAIL:
		return "失败"
	case STRATEGY_REASON_TIMEOUT:
		return "超时"
	case STRATEGY_REASON_ABORT:
		return "终止"
	case STRATEGY_REASON_MISS:
		return "未找到浮漂"
	}
	return "其它"
}
