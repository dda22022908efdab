package strategy

import (
	"time"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/detector"
	"fishing-tool/internal/history"
	"fishing-tool/internal/input"
	"fishing-tool/internal/pkg/sleeper"
)

type Strategy interface {
	GetName() string
	GetMode() string
	Init(sctx *StrategyContext) error
	Execute(sctx *StrategyContext) int32 // 返回 STRATEGY_REASON_*
}

// Window 每轮开始前激活的游戏窗口
type Window interface {
	Active()
}

// Recorder 抛竿记录的去处, 为空时不记录
type Recorder interface {
	Record(c *history.Cast) error
}

type Options struct {
	CastKey     string        // 抛竿按键
	KeyHold     time.Duration // 按键、点击的按住时长
	TraceCursor bool          // 用鼠标描出命中点和水花检测框, 调参时使用
}

type StrategyContext struct {
	Window  Window
	Capture capture.Provider
	Input   *input.Tracked
	Clock   sleeper.Clock
	Params  *detector.Params
	Options Options
	History Recorder
	Attrs   map[string]any // 不限制存储内容，如果是大型value，自动写入指针
}

// 成功、失败、超时、终止、其它、没找到浮漂
const (
	STRATEGY_REASON_SUCCESS int32 = iota
	STRATEGY_REASON_FAIL
	STRATEGY_REASON_TIMEOUT
	STRATEGY_REASON_ABORT
	STRATEGY_REASON_OTHER
	STRATEGY_REASON_MISS
)

// NewStrategyContext 每轮都是新的上下文, 共享配置但不共享Attrs
func NewStrategyContext(config *ExecutionConfig) *StrategyContext {
	attrs := make(map[string]any)

	return &StrategyContext{
		Window:  config.Window,
		Capture: config.Capture,
		Input:   config.Input,
		Clock:   config.Clock,
		Params:  config.Params,
		Options: config.Options,
		History: config.History,
		Attrs:   attrs,
	}
}
