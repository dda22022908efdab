// Package capturetest 测试用的假屏幕
package capturetest

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"
	"time"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/geom"
	"fishing-tool/internal/pkg/sleeper"
)

// Frame 返回第n次截取区域r时屏幕的样子(屏幕坐标)
type Frame func(r geom.Region, n int) *image.RGBA

// Screen 触发前返回Before, 触发后返回After生成的画面
type Screen struct {
	mu sync.Mutex

	Before *image.RGBA
	After  Frame

	// 每次截图推进的时间, Clock为空时不推进
	Clock *sleeper.MockClock
	Step  time.Duration

	triggered bool
	counts    map[geom.Region]int
	requests  []geom.Region
}

func NewScreen(before *image.RGBA, after Frame) *Screen {
	return &Screen{Before: before, After: after, counts: make(map[geom.Region]int)}
}

func (s *Screen) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggered = true
}

// Requests 所有截图请求, 按发生顺序
func (s *Screen) Requests() []geom.Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]geom.Region, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Screen) Capture(r geom.Region) (*capture.Grid, error) {
	s.mu.Lock()
	s.requests = append(s.requests, r)
	src := s.Before
	if s.triggered && s.After != nil {
		src = s.After(r, s.counts[r])
		s.counts[r]++
	}
	s.mu.Unlock()

	if s.Clock != nil {
		s.Clock.Advance(s.Step)
	}
	return capture.NewGrid(r, cut(src, r)), nil
}

// cut 超出屏幕的部分被截掉, 与真实截图在屏幕边缘的表现一致
func cut(src *image.RGBA, r geom.Region) *image.RGBA {
	rect := r.Rect().Intersect(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst
}

// Sequence 依次返回给定均值的画面, 用完后重复最后一个
func Sequence(means []float64, clock *sleeper.MockClock, step time.Duration) capture.Provider {
	var mu sync.Mutex
	i := 0
	return capture.ProviderFunc(func(r geom.Region) (*capture.Grid, error) {
		mu.Lock()
		mean := means[min(i, len(means)-1)]
		i++
		mu.Unlock()

		if clock != nil {
			clock.Advance(step)
		}
		return capture.NewGrid(r, WithMean(r.Width, r.Height, mean)), nil
	})
}

func Fill(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	FillRect(img, img.Bounds(), v)
	return img
}

func FillRect(img *image.RGBA, rect image.Rectangle, v uint8) {
	draw.Draw(img, rect, &image.Uniform{C: color.RGBA{R: v, G: v, B: v, A: 255}}, image.Point{}, draw.Src)
}

// WithMean 生成均值为mean的灰度画面: 一部分像素取floor(mean)+1, 其余取floor(mean)
func WithMean(w, h int, mean float64) *image.RGBA {
	base := math.Floor(mean)
	img := Fill(w, h, uint8(base))

	n := w * h
	k := int(math.Round((mean - base) * float64(n)))
	hi := color.RGBA{R: uint8(base) + 1, G: uint8(base) + 1, B: uint8(base) + 1, A: 255}
	for i := 0; i < k; i++ {
		img.SetRGBA(i%w, i/w, hi)
	}
	return img
}
