package game

import (
	"errors"
	"log"
	"time"

	"fishing-tool/internal/geom"

	"github.com/go-vgo/robotgo"
)

var ErrResizeUnsupported = errors.New("当前系统不支持调整游戏窗口大小")

type Game struct {
	Pid   int
	Name  string
	Title string
	Rect  *GameRect // 游戏窗口位置
}

// 原点(0, 0)是屏幕左上角
type GameRect struct {
	x int
	y int
	w int
	h int
}

func (r *GameRect) Region() geom.Region {
	return geom.Region{Top: r.y, Left: r.x, Width: r.w, Height: r.h}
}

/**
 * @param name 游戏的进程名称，例如：Wow.exe
 */
func NewGame(name string, title string) (*Game, error) {
	if len(name) == 0 {
		return nil, errors.New("游戏进程名称不能为空")
	}

	g := &Game{Name: name, Title: title}
	return g, nil
}

// Initialize 找到游戏进程并激活窗口, width/height大于0时调整窗口大小
func (g *Game) Initialize(width int32, height int32) error {
	if _, err := g.GetPid(); err != nil {
		return err
	}
	log.Printf("[初始器] 当前游戏窗口标题:%s 进程ID:%d 进程名称:%s\n", g.Title, g.Pid, g.Name)

	g.Active()
	time.Sleep(time.Duration(1) * time.Second)
	g.GetRect()
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := g.Resize(width, height); err != nil {
		if errors.Is(err, ErrResizeUnsupported) {
			log.Printf("[初始器] %v, 保持当前窗口大小\n", err)
			return nil
		}
		return err
	}
	return nil
}

func (g *Game) Active() {
	robotgo.ActivePid(g.Pid)
}

func (g *Game) GetPid() (int, error) {
	if g.Pid != 0 {
		return g.Pid, nil
	}

	pidList, err := robotgo.FindIds(g.Name)
	if err != nil || len(pidList) <= 0 {
		log.Println("[初始器] 未发现目标游戏进程, 请启动游戏后重试!")
		return -1, errors.New("未发现目标游戏进程")
	}

	pid := pidList[0]
	g.Pid = pid

	return pid, nil
}

func (g *Game) GetRect() *GameRect {
	if g.Rect != nil {
		return g.Rect
	}
	x, y, w, h := robotgo.GetBounds(g.Pid)

	g.Rect = &GameRect{
		x: x, y: y, w: w, h: h,
	}
	return g.Rect
}

// Region 游戏窗口在屏幕上的范围
func (g *Game) Region() geom.Region {
	return g.GetRect().Region()
}

func (g *Game) refreshRect() {
	g.Rect = nil
	g.GetRect()
}
