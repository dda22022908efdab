package fishing

import (
	"image"
	"log"

	"fishing-tool/internal/detector"
	"fishing-tool/internal/geom"
	"fishing-tool/internal/history"
	"fishing-tool/internal/input"
	"fishing-tool/internal/strategy"
)

// FishingStrategy 一轮 = 抛竿, 定位浮漂, 等待水花, 拾取
type FishingStrategy struct {
	mode string
	loot LootStyle

	localizer *detector.Localizer
	waiter    *detector.EventWaiter
}

func NewFishingStrategy(mode string, loot LootStyle) strategy.Strategy {
	return &FishingStrategy{
		mode: mode,
		loot: loot,
	}
}

func (s *FishingStrategy) GetName() string {
	return "钓鱼"
}

func (s *FishingStrategy) GetMode() string {
	return s.mode
}

func (s *FishingStrategy) Init(sctx *strategy.StrategyContext) error {
	if err := sctx.Params.Validate(); err != nil {
		return err
	}

	s.localizer = detector.NewLocalizer(sctx.Params, sctx.Capture, sctx.Clock)
	if sctx.Options.TraceCursor {
		s.localizer.OnHit = func(hit detector.Hit) {
			p := hit.Position.Image()
			sctx.Input.MoveCursor(p.X, p.Y)
		}
	}
	s.waiter = detector.NewEventWaiter(sctx.Params, sctx.Capture, sctx.Clock)
	return nil
}

func (s *FishingStrategy) Execute(sctx *strategy.StrategyContext) int32 {
	params := sctx.Params
	clock := sctx.Clock
	cast := &history.Cast{
		StartedAt: clock.Now(),
		Strategy:  s.GetName() + "-" + s.mode,
	}

	target, found, err := s.localizer.FindTarget(params.SearchRegion, params.ProbeRadius, func() {
		input.Tap(sctx.Input, clock, sctx.Options.CastKey, sctx.Options.KeyHold)
	})
	if err != nil {
		log.Printf("[钓鱼] 定位浮漂失败: %v\n", err)
		cast.Outcome = history.OutcomeError
		s.record(sctx, cast)
		return strategy.STRATEGY_REASON_OTHER
	}

	if !found || !inside(target.Position, params.SearchRegion) {
		log.Println("[钓鱼] 没有找到浮漂, 重新抛竿")
		cast.Outcome = history.OutcomeNotFound
		s.record(sctx, cast)
		return strategy.STRATEGY_REASON_MISS
	}

	cast.Found = true
	cast.Position = target.Position
	cast.Hits = target.Hits
	cast.Weight = target.Weight
	log.Printf("[钓鱼] 浮漂位置 %s 命中点%d个\n", target.Position, target.Hits)

	p := target.Position.Image()
	if sctx.Options.TraceCursor {
		s.traceBox(sctx, p)
	}
	sctx.Input.MoveCursor(p.X-CursorAwayGap, p.Y-CursorAwayGap) // 鼠标不能挡住水花

	outcome, err := s.waiter.WaitForEvent(target.Position, params.AppearRadius)
	if err != nil {
		log.Printf("[钓鱼] 等待水花失败: %v\n", err)
		cast.Outcome = history.OutcomeError
		s.record(sctx, cast)
		return strategy.STRATEGY_REASON_OTHER
	}

	cast.Outcome = outcome.String()
	var reason int32
	switch outcome {
	case detector.Appeared:
		clock.Sleep(LootDelay)
		sctx.Input.MoveCursor(p.X, p.Y)
		clock.Sleep(AimDelay)
		input.ModifiedClick(sctx.Input, clock, s.loot.Modifier, s.loot.Button, p.X, p.Y, sctx.Options.KeyHold)
		reason = strategy.STRATEGY_REASON_SUCCESS
	case detector.Faded:
		reason = strategy.STRATEGY_REASON_FAIL
	default:
		reason = strategy.STRATEGY_REASON_TIMEOUT
	}

	cast.Duration = clock.Now().Sub(cast.StartedAt)
	s.record(sctx, cast)
	return reason
}

// traceBox 沿水花检测框的四个角走一圈
func (s *FishingStrategy) traceBox(sctx *strategy.StrategyContext, center image.Point) {
	box := geom.SquareAround(center, sctx.Params.AppearRadius)
	for _, corner := range box.Corners() {
		sctx.Clock.Sleep(TraceDelay)
		c := corner.Image()
		sctx.Input.MoveCursor(c.X, c.Y)
	}
	sctx.Clock.Sleep(TraceDelay)
}

func (s *FishingStrategy) record(sctx *strategy.StrategyContext, cast *history.Cast) {
	if sctx.History == nil {
		return
	}
	if cast.Duration == 0 {
		cast.Duration = sctx.Clock.Now().Sub(cast.StartedAt)
	}
	if err := sctx.History.Record(cast); err != nil {
		log.Printf("[钓鱼] 保存抛竿记录失败: %v\n", err)
	}
}

// inside 浮漂必须严格落在搜索区域内部
func inside(p geom.Point, region geom.Region) bool {
	return geom.PointsInBox([]geom.Point{p}, region.Corners())[0]
}
