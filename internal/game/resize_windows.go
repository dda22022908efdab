package game

import (
	"errors"
	"log"

	"github.com/go-vgo/robotgo"
	"github.com/tailscale/win"
)

func (g *Game) Resize(w int32, h int32) error {
	screenWidth, screenHeight := robotgo.GetScreenSize()
	rect := g.GetRect()
	log.Printf("[初始器] 当前屏幕分辨率: %d x %d 游戏窗口大小: %d x %d\n", screenWidth, screenHeight, rect.w, rect.h)

	hwnd := robotgo.FindWindow(g.Title)
	if !win.SetWindowPos(hwnd, win.HWND_TOP, 0, 0, w, h, win.SWP_SHOWWINDOW) {
		return errors.New("调整窗口大小失败")
	}

	g.refreshRect()

	rect = g.Rect
	log.Printf("[初始器] 变更后游戏窗口大小: %d x %d\n", rect.w, rect.h)
	return nil
}
