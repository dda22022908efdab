// Package platform 把截图和输入注入落到具体的系统实现上, 启动时选择一次
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/geom"
	"fishing-tool/internal/input"

	"github.com/go-vgo/robotgo"
)

var (
	ErrUnsupportedPlatform = errors.New("当前操作系统不支持输入注入")
	ErrUnknownBackend      = errors.New("未知的截图方式")
)

// 截图方式
const (
	BACKEND_ROBOTGO    string = "robotgo"
	BACKEND_SCREENSHOT string = "screenshot"
)

var supportedOS = []string{"windows", "darwin", "linux"}

func NewCapture(backend string) (capture.Provider, error) {
	switch backend {
	case BACKEND_ROBOTGO:
		return &RobotgoCapture{}, nil
	case BACKEND_SCREENSHOT:
		return &ScreenshotCapture{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

func NewInjector() (input.Injector, error) {
	if !slices.Contains(supportedOS, runtime.GOOS) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
	}
	return &RobotgoInjector{}, nil
}

// ScreenRegion 主屏幕范围
func ScreenRegion() geom.Region {
	w, h := robotgo.GetScreenSize()
	return geom.Region{Top: 0, Left: 0, Width: w, Height: h}
}
