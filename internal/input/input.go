// Package input 鼠标键盘注入
package input

import (
	"sync"
	"time"

	"fishing-tool/internal/pkg/sleeper"
)

// 鼠标按键
const (
	ButtonLeft  string = "left"
	ButtonRight string = "right"
)

// 程序退出时需要兜底抬起的按键
var ModifierKeys = []string{"shift", "ctrl", "alt"}

// Injector 同步、无回执的输入注入
type Injector interface {
	MoveCursor(x, y int)
	PressKey(key string)
	ReleaseKey(key string)
	PressButton(button string)
	ReleaseButton(button string)
}

// Tracked 记录当前按下未抬起的键, 保证任何退出路径都能全部抬起
type Tracked struct {
	mu      sync.Mutex
	inner   Injector
	keys    map[string]bool
	buttons map[string]bool
}

func NewTracked(inner Injector) *Tracked {
	return &Tracked{
		inner:   inner,
		keys:    make(map[string]bool),
		buttons: make(map[string]bool),
	}
}

func (t *Tracked) MoveCursor(x, y int) {
	t.inner.MoveCursor(x, y)
}

func (t *Tracked) PressKey(key string) {
	t.mu.Lock()
	t.keys[key] = true
	t.mu.Unlock()
	t.inner.PressKey(key)
}

func (t *Tracked) ReleaseKey(key string) {
	t.inner.ReleaseKey(key)
	t.mu.Lock()
	delete(t.keys, key)
	t.mu.Unlock()
}

func (t *Tracked) PressButton(button string) {
	t.mu.Lock()
	t.buttons[button] = true
	t.mu.Unlock()
	t.inner.PressButton(button)
}

func (t *Tracked) ReleaseButton(button string) {
	t.inner.ReleaseButton(button)
	t.mu.Lock()
	delete(t.buttons, button)
	t.mu.Unlock()
}

// Held 当前仍按下的键和鼠标按键数量
func (t *Tracked) Held() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.keys) + len(t.buttons)
}

// ReleaseHeld 抬起所有仍按下的键, 可重复调用
func (t *Tracked) ReleaseHeld() {
	t.mu.Lock()
	keys := make([]string, 0, len(t.keys))
	for k := range t.keys {
		keys = append(keys, k)
	}
	buttons := make([]string, 0, len(t.buttons))
	for b := range t.buttons {
		buttons = append(buttons, b)
	}
	t.mu.Unlock()

	for _, b := range buttons {
		t.ReleaseButton(b)
	}
	for _, k := range keys {
		t.ReleaseKey(k)
	}
}

// ReleaseAll 不管记录如何, 把修饰键和鼠标按键都抬一遍
func ReleaseAll(inj Injector) {
	inj.ReleaseButton(ButtonLeft)
	inj.ReleaseButton(ButtonRight)
	for _, key := range ModifierKeys {
		inj.ReleaseKey(key)
	}
}

// Tap 按下key保持hold后抬起
func Tap(inj Injector, clock sleeper.Clock, key string, hold time.Duration) {
	inj.PressKey(key)
	defer inj.ReleaseKey(key)
	clock.Sleep(hold)
}

// ModifiedClick 按住修饰键点击鼠标, modifier为空时就是普通点击
func ModifiedClick(inj Injector, clock sleeper.Clock, modifier string, button string, x, y int, hold time.Duration) {
	inj.MoveCursor(x, y)
	if modifier != "" {
		inj.PressKey(modifier)
		defer inj.ReleaseKey(modifier)
		clock.Sleep(hold) // 修饰键和鼠标衔接的地方要等待
	}

	inj.PressButton(button)
	inj.ReleaseButton(button)
	clock.Sleep(hold)
}
