package fishing

import (
	"time"

	"fishing-tool/internal/detector"
	"fishing-tool/internal/geom"
	"fishing-tool/internal/input"
)

const (
	MODE_STANDARD  string = "标准"   // 按住shift右键拾取
	MODE_AUTO_LOOT string = "自动拾取" // 游戏内已开启自动拾取, 直接右键
)

// LootStyle 咬钩后的拾取方式
type LootStyle struct {
	Modifier string // 为空表示不按修饰键
	Button   string
}

var (
	LootShiftRight = LootStyle{Modifier: "shift", Button: input.ButtonRight}
	LootRight      = LootStyle{Button: input.ButtonRight}
)

var (
	LootDelay     = 400 * time.Millisecond // 水花出现到移动鼠标
	AimDelay      = 300 * time.Millisecond // 移动鼠标到点击
	TraceDelay    = 200 * time.Millisecond // 描框时每个角的停顿
	CursorAwayGap = 200                    // 等待水花时把鼠标挪开的距离
)

// DefaultParams 1280x800窗口下的一套参数, 搜索区域覆盖窗口中间的水面
func DefaultParams() *detector.Params {
	return &detector.Params{
		SearchRegion:           geom.Region{Top: 70, Left: 70, Width: 1134, Height: 650},
		ProbeRadius:            20,
		ColorDiffThreshold:     2.0,
		ConfirmationIterations: 3,
		ConfirmationPause:      150 * time.Millisecond,
		SettleDelay:            2 * time.Second,
		AppearRadius:           40,
		AppearThreshold:        1.2,
		FadeThreshold:          -4.0,
		MaxWaitDuration:        30 * time.Second,
	}
}
