package detector

import (
	"errors"
	"fmt"
	"time"

	"fishing-tool/internal/geom"
)

// Params 定位器和等待器共用的检测参数, 启动时构造一次, 运行期间只读
type Params struct {
	SearchRegion geom.Region // 浮漂一定会落入的区域

	ProbeRadius            int           // 探针半径, 也是网格间距
	ColorDiffThreshold     float64       // 判定为候选点的颜色均值差
	ConfirmationIterations int           // 候选点复核次数
	ConfirmationPause      time.Duration // 两次复核之间的间隔
	SettleDelay            time.Duration // 抛竿后等待浮漂出现的时间

	AppearRadius    int           // 水花检测框半径
	AppearThreshold float64       // 均值上升超过此值判定为水花
	FadeThreshold   float64       // 均值下降低于此值(负数)判定为浮漂消失
	MaxWaitDuration time.Duration // 等待水花的最长时间
}

func (p *Params) Validate() error {
	if err := p.SearchRegion.Validate(); err != nil {
		return fmt.Errorf("搜索区域无效 %s: %w", p.SearchRegion, err)
	}

	switch {
	case p.ProbeRadius <= 0:
		return errors.New("探针半径必须大于0")
	case 2*p.ProbeRadius > p.SearchRegion.Width || 2*p.ProbeRadius > p.SearchRegion.Height:
		return fmt.Errorf("探针边长 %d 超出搜索区域 %s", 2*p.ProbeRadius, p.SearchRegion)
	case p.ColorDiffThreshold <= 0:
		return errors.New("颜色差阈值必须大于0")
	case p.ConfirmationIterations < 0:
		return errors.New("复核次数不能为负数")
	case p.ConfirmationPause < 0:
		return errors.New("复核间隔不能为负数")
	case p.SettleDelay < 0:
		return errors.New("抛竿等待时间不能为负数")
	case p.AppearRadius <= 0:
		return errors.New("水花检测半径必须大于0")
	case p.AppearThreshold <= 0:
		return errors.New("水花阈值必须大于0")
	case p.FadeThreshold >= 0:
		return errors.New("消失阈值必须为负数")
	case p.MaxWaitDuration <= 0:
		return errors.New("最长等待时间必须大于0")
	}
	return nil
}

// CheckWithin 搜索区域必须完整落在bounds(屏幕或游戏窗口)之内, 否则定位时会截到区域外
func (p *Params) CheckWithin(name string, bounds geom.Region) error {
	if !bounds.Contains(p.SearchRegion) {
		return fmt.Errorf("搜索区域 %s 超出%s %s", p.SearchRegion, name, bounds)
	}
	return nil
}
