// Package capture 截图区域与像素网格
package capture

import (
	"image"
	"image/draw"

	"fishing-tool/internal/geom"

	"gonum.org/v1/gonum/stat"
)

// Provider 截取指定区域的当前画面, 需要支持每秒数十次的连续调用
type Provider interface {
	Capture(r geom.Region) (*Grid, error)
}

// ProviderFunc 让普通函数满足Provider
type ProviderFunc func(r geom.Region) (*Grid, error)

func (f ProviderFunc) Capture(r geom.Region) (*Grid, error) {
	return f(r)
}

// Grid 一次截图的像素网格, 形状为(高, 宽, 3), 只读
type Grid struct {
	Region geom.Region
	img    *image.RGBA
}

func NewGrid(r geom.Region, img image.Image) *Grid {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Grid{Region: r, img: rgba}
}

func (g *Grid) Width() int {
	return g.img.Bounds().Dx()
}

func (g *Grid) Height() int {
	return g.img.Bounds().Dy()
}

func (g *Grid) Channels() int {
	return 3
}

func (g *Grid) SameShape(o *Grid) bool {
	return g.Width() == o.Width() && g.Height() == o.Height()
}

func (g *Grid) Image() image.Image {
	return g.img
}

// Crop 按屏幕坐标裁剪, 超出网格的部分直接截断, 因此返回的形状可能小于r
func (g *Grid) Crop(r geom.Region) *Grid {
	b := g.img.Bounds()
	local := image.Rect(r.Left-g.Region.Left, r.Top-g.Region.Top, r.Right()-g.Region.Left, r.Bottom()-g.Region.Top).Add(b.Min)

	sub := g.img.SubImage(local.Intersect(b)).(*image.RGBA)
	return &Grid{Region: r, img: sub}
}

// Mean 所有像素R、G、B三个通道的均值, alpha不参与
func (g *Grid) Mean() float64 {
	b := g.img.Bounds()
	if b.Empty() {
		return 0
	}

	values := make([]float64, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := g.img.Pix[g.img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			p := row[4*x : 4*x+3]
			values = append(values, float64(p[0]), float64(p[1]), float64(p[2]))
		}
	}
	return stat.Mean(values, nil)
}
