package geom

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// 原点(0, 0)是屏幕左上角
type Point struct {
	X float64
	Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Image 四舍五入到像素坐标
func (p Point) Image() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

func (p Point) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Region 截图区域, 传入截图调用后不再修改
type Region struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Region) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return errors.New("区域宽高必须大于0")
	}
	return nil
}

func (r Region) Right() int {
	return r.Left + r.Width
}

func (r Region) Bottom() int {
	return r.Top + r.Height
}

func (r Region) Rect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right(), r.Bottom())
}

// Contains 判断o是否完整落在r内(允许贴边)
func (r Region) Contains(o Region) bool {
	return o.Left >= r.Left && o.Top >= r.Top && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

func (r Region) Offset(dx, dy int) Region {
	return Region{Top: r.Top + dy, Left: r.Left + dx, Width: r.Width, Height: r.Height}
}

// Corners 左上、右上、右下、左下
func (r Region) Corners() []Point {
	l, t := float64(r.Left), float64(r.Top)
	rt, b := float64(r.Right()), float64(r.Bottom())
	return []Point{{l, t}, {rt, t}, {rt, b}, {l, b}}
}

func (r Region) String() string {
	return fmt.Sprintf("[top:%d left:%d width:%d height:%d]", r.Top, r.Left, r.Width, r.Height)
}

// SquareAround 以center为中心、边长2*radius的正方形
func SquareAround(center image.Point, radius int) Region {
	return Region{
		Top:    center.Y - radius,
		Left:   center.X - radius,
		Width:  2 * radius,
		Height: 2 * radius,
	}
}

func RegionFromRect(rect image.Rectangle) Region {
	rect = rect.Canon()
	return Region{Top: rect.Min.Y, Left: rect.Min.X, Width: rect.Dx(), Height: rect.Dy()}
}
