// Package selector 用OpenCV窗口让用户框选浮漂搜索区域
package selector

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"fishing-tool/internal/geom"
	"fishing-tool/internal/pkg/utils"

	"gocv.io/x/gocv"
)

const (
	KEY_ENTER int = 13
	KEY_ESC   int = 27
	KEY_SPACE int = 32
)

var ErrCancelled = errors.New("已取消框选")

var (
	hintText = []string{
		"Select area in which bobber will definitely land",
		"[s]=draw box  [Esc]=close  [Enter]=accept box",
		"[z]=zoom to box  [shift+z]=reset zoom",
	}
	zoomText  = []string{"zoom mode: [s]=draw box  [shift+z]=reset zoom"}
	textColor = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	boxColor  = color.RGBA{R: 0, G: 255, B: 0, A: 0}
)

// selectState 框选窗口的全部状态, 只在SelectRegion的循环里修改
type selectState struct {
	full   gocv.Mat        // 整屏截图, 只读
	view   gocv.Mat        // 当前显示的画面
	rect   image.Rectangle // 当前框, 视图坐标
	zoom   utils.Zoom      // 视图坐标到整屏坐标
	zoomed bool

	hasView bool
}

// SelectRegion 显示整屏截图并返回用户框选的区域(屏幕坐标)
func SelectRegion(screen image.Image, title string) (geom.Region, error) {
	full, err := gocv.ImageToMatRGB(screen)
	if err != nil {
		return geom.Region{}, fmt.Errorf("截图转换失败: %w", err)
	}
	defer full.Close()

	window := gocv.NewWindow(title)
	defer window.Close()

	state := &selectState{full: full}
	state.reset()
	defer state.view.Close()

	for {
		frame := state.render()
		window.IMShow(frame)
		frame.Close()

		switch k := window.WaitKey(0); k {
		case KEY_ESC, -1:
			log.Println("[框选器] 已取消框选")
			return geom.Region{}, ErrCancelled
		case 's', KEY_SPACE:
			state.rect = window.SelectROI(state.view)
		case KEY_ENTER:
			if state.rect.Empty() {
				log.Println("[框选器] 还没有框选区域")
				continue
			}
			region, err := state.region()
			if err != nil {
				log.Printf("[框选器] %v, 请重新框选\n", err)
				state.rect = image.Rectangle{}
				continue
			}
			log.Printf("[框选器] 搜索区域 %s\n", region)
			return region, nil
		case 'z':
			if state.rect.Empty() {
				log.Println("[框选器] 没有可以放大的框")
				continue
			}
			if state.zoomed {
				log.Println("[框选器] 只能放大一次, shift+z 恢复")
				continue
			}
			state.zoomIn()
		case 'Z':
			state.reset()
		}
	}
}

func (s *selectState) bounds() image.Rectangle {
	return image.Rect(0, 0, s.full.Cols(), s.full.Rows())
}

func (s *selectState) reset() {
	view := s.full.Clone()
	addText(&view, hintText)
	s.setView(view)
	s.rect = image.Rectangle{}
	s.zoom = utils.Identity()
	s.zoomed = false
}

func (s *selectState) zoomIn() {
	box := s.rect.Intersect(s.bounds())
	s.zoom = utils.NewZoom(box, s.full.Cols(), s.full.Rows())

	crop := s.full.Region(box)
	defer crop.Close()

	w, h := s.zoom.ViewSize(box)
	view := gocv.NewMat()
	gocv.Resize(crop, &view, image.Pt(w, h), 0, 0, gocv.InterpolationLinear)
	addText(&view, zoomText)

	s.setView(view)
	s.rect = image.Rectangle{}
	s.zoomed = true
}

func (s *selectState) setView(view gocv.Mat) {
	if s.hasView {
		s.view.Close()
	}
	s.view = view
	s.hasView = true
}

// render 在视图副本上画出当前框, 调用方负责关闭
func (s *selectState) render() gocv.Mat {
	frame := s.view.Clone()
	if !s.rect.Empty() {
		gocv.Rectangle(&frame, s.rect, boxColor, 1)
	}
	return frame
}

// region 视图中的框映射回屏幕坐标并规整
func (s *selectState) region() (geom.Region, error) {
	rect := s.zoom.ToGlobalRect(s.rect)
	quad := [4]geom.Point{
		geom.Pt(float64(rect.Min.X), float64(rect.Min.Y)),
		geom.Pt(float64(rect.Max.X), float64(rect.Min.Y)),
		geom.Pt(float64(rect.Max.X), float64(rect.Max.Y)),
		geom.Pt(float64(rect.Min.X), float64(rect.Max.Y)),
	}
	return geom.RegionFromQuad(quad)
}

func addText(img *gocv.Mat, lines []string) {
	x, y := 20, 50
	for _, line := range lines {
		gocv.PutText(img, line, image.Pt(x, y), gocv.FontHersheySimplex, 1, textColor, 2)
		y += 40
	}
}
