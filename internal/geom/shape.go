package geom

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// 默认的四边形内角容差(度)
const (
	RectAngleMin float64 = 70
	RectAngleMax float64 = 120
)

// RectBounds 点集的轴对齐边界, 空点集返回全0
func RectBounds(pts []Point) (xMin, xMax, yMin, yMax float64) {
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	xs, ys := split(pts)
	return floats.Min(xs), floats.Max(xs), floats.Min(ys), floats.Max(ys)
}

// PointsInBox 判断query中每个点是否严格落在subject的边界框内部(边界上的点不算)
func PointsInBox(query []Point, subject []Point) []bool {
	xMin, xMax, yMin, yMax := RectBounds(subject)

	result := make([]bool, len(query))
	for i, pt := range query {
		result[i] = xMin < pt.X && pt.X < xMax && yMin < pt.Y && pt.Y < yMax
	}
	return result
}

func IsRectLike(pts [4]Point) bool {
	return IsRectLikeWithin(pts, RectAngleMin, RectAngleMax)
}

// IsRectLikeWithin 依次检查相邻两条边的夹角, 任意一个落在[minDeg, maxDeg]之外即不像矩形
// 零长度的边、反余弦越界都直接判定为否
func IsRectLikeWithin(pts [4]Point, minDeg float64, maxDeg float64) bool {
	for i := 0; i < 4; i++ {
		a, b, c := pts[i], pts[(i+1)%4], pts[(i+2)%4]
		s1 := []float64{a.X - b.X, a.Y - b.Y}
		s2 := []float64{b.X - c.X, b.Y - c.Y}

		lower := floats.Norm(s1, 2) * floats.Norm(s2, 2)
		if lower == 0 {
			return false
		}
		cos := floats.Dot(s1, s2) / lower
		if cos < -1 || cos > 1 {
			return false
		}
		angle := math.Acos(cos) * 180 / math.Pi
		if math.IsNaN(angle) || angle < minDeg || angle > maxDeg {
			return false
		}
	}
	return true
}

// SortClockwise 返回 左上、右上、右下、左下
// 上半两点按x排序, 下半两点按与左上点的距离从远到近排列
func SortClockwise(pts [4]Point) [4]Point {
	sorted := pts
	s := sorted[:]
	sort.SliceStable(s, func(i, j int) bool { return s[i].Y < s[j].Y })

	top := [2]Point{s[0], s[1]}
	if top[1].X < top[0].X {
		top[0], top[1] = top[1], top[0]
	}
	bottom := [2]Point{s[2], s[3]}
	if sqDist(top[0], bottom[1]) >= sqDist(top[0], bottom[0]) {
		bottom[0], bottom[1] = bottom[1], bottom[0]
	}
	return [4]Point{top[0], top[1], bottom[0], bottom[1]}
}

// ApproxRect 以重心为原点缩放四个顶点, 再把每个轴上的偏移量统一成四个偏移量绝对值的均值(保留符号)
func ApproxRect(poly [4]Point, scale float64) [4]Point {
	xs, ys := split(poly[:])
	cx, cy := stat.Mean(xs, nil), stat.Mean(ys, nil)

	var dx, dy [4]float64
	var absX, absY [4]float64
	for i := 0; i < 4; i++ {
		dx[i] = scale * (xs[i] - cx)
		dy[i] = scale * (ys[i] - cy)
		absX[i] = math.Abs(dx[i])
		absY[i] = math.Abs(dy[i])
	}
	meanX := stat.Mean(absX[:], nil)
	meanY := stat.Mean(absY[:], nil)

	var rect [4]Point
	for i := 0; i < 4; i++ {
		rect[i] = Point{
			X: sign(dx[i])*meanX + cx,
			Y: sign(dy[i])*meanY + cy,
		}
	}
	return rect
}

// RegionFromQuad 把框选出的四个顶点规整成Region: 排序、检查是否接近矩形、对齐成轴平行矩形
func RegionFromQuad(quad [4]Point) (Region, error) {
	sorted := SortClockwise(quad)
	if !IsRectLike(sorted) {
		return Region{}, errors.New("框选的区域不是矩形")
	}

	rect := ApproxRect(sorted, 1)
	xMin, xMax, yMin, yMax := RectBounds(rect[:])
	// 先取整四条边, 宽高由边相减得到, 否则右下边可能多出一个像素
	left, right := int(math.Round(xMin)), int(math.Round(xMax))
	top, bottom := int(math.Round(yMin)), int(math.Round(yMax))
	r := Region{Top: top, Left: left, Width: right - left, Height: bottom - top}
	return r, r.Validate()
}

func split(pts []Point) ([]float64, []float64) {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

func sqDist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
