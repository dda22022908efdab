package detector

import (
	"errors"
	"fmt"
	"image"
	"log"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/geom"
	"fishing-tool/internal/pkg/sleeper"

	"gonum.org/v1/gonum/stat"
)

// Hit 通过全部复核的网格点, 权重为所有差值的均值
type Hit struct {
	Position geom.Point
	Weight   float64
}

// Target 一次定位的结果, 命中点列表不会保留
type Target struct {
	Position geom.Point
	Hits     int
	Weight   float64 // 命中点权重均值
}

// Localizer 差分图定位: 抛竿前截一张基准图, 抛竿后逐个网格点对比
type Localizer struct {
	params  *Params
	capture capture.Provider
	clock   sleeper.Clock

	OnHit func(hit Hit) // 可选, 每确认一个命中点回调一次
}

func NewLocalizer(params *Params, provider capture.Provider, clock sleeper.Clock) *Localizer {
	return &Localizer{
		params:  params,
		capture: provider,
		clock:   clock,
	}
}

// FindTarget 返回false表示没有找到(常见结果, 由调用方决定是否重新抛竿)
// 只有基准图截取失败才会返回error
func (l *Localizer) FindTarget(region geom.Region, probeRadius int, trigger func()) (*Target, bool, error) {
	if probeRadius <= 0 {
		return nil, false, errors.New("探针半径必须大于0")
	}

	baseline, err := l.capture.Capture(region)
	if err != nil {
		return nil, false, fmt.Errorf("截取基准画面失败: %w", err)
	}

	trigger()
	l.clock.Sleep(l.params.SettleDelay)

	xMin, xMax, yMin, yMax := geom.RectBounds(region.Corners())
	var hits []Hit
	for x := int(xMin); x < int(xMax); x += probeRadius {
		for y := int(yMin); y < int(yMax); y += probeRadius {
			hit, ok := l.probe(baseline, region, image.Pt(x, y), probeRadius)
			if !ok {
				continue
			}
			log.Printf("[定位器] 检测到颜色差 %.2f 位置 %s\n", hit.Weight, hit.Position)
			hits = append(hits, hit)
			if l.OnHit != nil {
				l.OnHit(hit)
			}
		}
	}

	position, ok := WeightedCentroid(hits)
	if !ok {
		return nil, false, nil
	}

	weights := make([]float64, len(hits))
	for i, h := range hits {
		weights[i] = h.Weight
	}
	return &Target{Position: position, Hits: len(hits), Weight: stat.Mean(weights, nil)}, true, nil
}

// probe 对一个网格点做首次比较和复核, 任意一次低于阈值即丢弃
func (l *Localizer) probe(baseline *capture.Grid, region geom.Region, center image.Point, radius int) (Hit, bool) {
	square := geom.SquareAround(center, radius)
	if !region.Contains(square) {
		return Hit{}, false // 不向搜索区域外发起截图
	}

	cropped := baseline.Crop(square)
	baseMean := cropped.Mean()
	threshold := l.params.ColorDiffThreshold

	diff, ok := l.diff(square, cropped, baseMean)
	if !ok || diff <= threshold {
		return Hit{}, false
	}

	diffs := make([]float64, 0, 1+l.params.ConfirmationIterations)
	diffs = append(diffs, diff)
	for n := 0; n < l.params.ConfirmationIterations; n++ {
		l.clock.Sleep(l.params.ConfirmationPause)

		diff, ok = l.diff(square, cropped, baseMean)
		if !ok || diff < threshold {
			return Hit{}, false
		}
		diffs = append(diffs, diff)
	}

	position := geom.Pt(float64(center.X), float64(center.Y))
	return Hit{Position: position, Weight: stat.Mean(diffs, nil)}, true
}

// diff 形状对不上(靠近屏幕边缘)或截图失败时返回false
func (l *Localizer) diff(square geom.Region, cropped *capture.Grid, baseMean float64) (float64, bool) {
	current, err := l.capture.Capture(square)
	if err != nil {
		log.Printf("[定位器] 截图失败 %s: %v\n", square, err)
		return 0, false
	}
	if !current.SameShape(cropped) {
		return 0, false
	}
	return current.Mean() - baseMean, true
}

// WeightedCentroid 以差值为权重的加权重心, 没有命中点时返回false
func WeightedCentroid(hits []Hit) (geom.Point, bool) {
	if len(hits) == 0 {
		return geom.Point{}, false
	}

	xs := make([]float64, len(hits))
	ys := make([]float64, len(hits))
	weights := make([]float64, len(hits))
	for i, h := range hits {
		xs[i] = h.Position.X
		ys[i] = h.Position.Y
		weights[i] = h.Weight
	}
	return geom.Pt(stat.Mean(xs, weights), stat.Mean(ys, weights)), true
}
