// Package inputtest 记录所有注入操作的假Injector
package inputtest

import (
	"fmt"
	"sync"
)

type Recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *Recorder) record(event string) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *Recorder) MoveCursor(x, y int) {
	r.record(fmt.Sprintf("move %d,%d", x, y))
}

func (r *Recorder) PressKey(key string) {
	r.record("down " + key)
}

func (r *Recorder) ReleaseKey(key string) {
	r.record("up " + key)
}

func (r *Recorder) PressButton(button string) {
	r.record("press " + button)
}

func (r *Recorder) ReleaseButton(button string) {
	r.record("release " + button)
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Down 仍处于按下状态的键/鼠标按键
func (r *Recorder) Down() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := make(map[string]bool)
	seen := make(map[string]bool)
	var order []string
	for _, e := range r.events {
		var kind, name string
		fmt.Sscanf(e, "%s %s", &kind, &name)
		switch kind {
		case "down", "press":
			if !seen[name] {
				seen[name] = true
				order = append(order, name)
			}
			state[name] = true
		case "up", "release":
			state[name] = false
		}
	}

	var down []string
	for _, name := range order {
		if state[name] {
			down = append(down, name)
		}
	}
	return down
}
