package platform

import (
	"log"

	"github.com/go-vgo/robotgo"
)

// RobotgoInjector 所有调用都不等待结果, 出错只记日志
type RobotgoInjector struct{}

func (i *RobotgoInjector) MoveCursor(x, y int) {
	robotgo.Move(x, y)
}

func (i *RobotgoInjector) PressKey(key string) {
	if err := robotgo.KeyToggle(key, "down"); err != nil {
		log.Printf("[注入器] 按下 %s 失败: %v\n", key, err)
	}
}

func (i *RobotgoInjector) ReleaseKey(key string) {
	if err := robotgo.KeyToggle(key, "up"); err != nil {
		log.Printf("[注入器] 抬起 %s 失败: %v\n", key, err)
	}
}

func (i *RobotgoInjector) PressButton(button string) {
	if err := robotgo.Toggle(button); err != nil {
		log.Printf("[注入器] 按下鼠标 %s 失败: %v\n", button, err)
	}
}

func (i *RobotgoInjector) ReleaseButton(button string) {
	if err := robotgo.Toggle(button, "up"); err != nil {
		log.Printf("[注入器] 抬起鼠标 %s 失败: %v\n", button, err)
	}
}
