package utils

import (
	"image"
	"math"
)

// Zoom 放大视图中的坐标映射回原图: global = local*Scale + Offset
type Zoom struct {
	Scale  float64
	Offset image.Point
}

func Identity() Zoom {
	return Zoom{Scale: 1}
}

// NewZoom 把box放大到w x h的画面内, 两个方向使用同一比例, 保证box完整可见
func NewZoom(box image.Rectangle, w int, h int) Zoom {
	box = box.Canon()
	scale := math.Min(float64(box.Dx())/float64(w), float64(box.Dy())/float64(h))
	return Zoom{Scale: scale, Offset: box.Min}
}

func (z Zoom) IsIdentity() bool {
	return z.Scale == 1 && z.Offset == image.Point{}
}

// ViewSize 放大后视图的尺寸
func (z Zoom) ViewSize(box image.Rectangle) (int, int) {
	box = box.Canon()
	return int(float64(box.Dx()) / z.Scale), int(float64(box.Dy()) / z.Scale)
}

func (z Zoom) ToGlobal(local image.Point) image.Point {
	scaled := image.Point{X: int(float64(local.X) * z.Scale), Y: int(float64(local.Y) * z.Scale)}
	return ToGlobalPoint(z.Offset, scaled)
}

func (z Zoom) ToGlobalRect(local image.Rectangle) image.Rectangle {
	local = local.Canon()
	return image.Rectangle{Min: z.ToGlobal(local.Min), Max: z.ToGlobal(local.Max)}
}

func ToGlobalPoint(offset image.Point, local image.Point) image.Point {
	return image.Point{X: offset.X + local.X, Y: offset.Y + local.Y}
}
