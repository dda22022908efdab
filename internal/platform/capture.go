package platform

import (
	"errors"
	"fmt"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/geom"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
)

// RobotgoCapture 与游戏窗口截图使用同一套实现
type RobotgoCapture struct{}

func (c *RobotgoCapture) Capture(r geom.Region) (*capture.Grid, error) {
	bitmap := robotgo.CaptureScreen(r.Left, r.Top, r.Width, r.Height)
	if bitmap == nil {
		return nil, errors.New("robotgo截图失败")
	}
	defer robotgo.FreeBitmap(bitmap)

	img := robotgo.ToImage(bitmap)
	if img == nil {
		return nil, errors.New("robotgo截图转换失败")
	}
	return capture.NewGrid(r, img), nil
}

// ScreenshotCapture 多屏或高分屏下robotgo截图错位时使用
type ScreenshotCapture struct{}

func (c *ScreenshotCapture) Capture(r geom.Region) (*capture.Grid, error) {
	img, err := screenshot.CaptureRect(r.Rect())
	if err != nil {
		return nil, fmt.Errorf("截图失败 %s: %w", r, err)
	}
	return capture.NewGrid(r, img), nil
}
