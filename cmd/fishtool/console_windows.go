package main

import (
	"log"
	"syscall"
	"unsafe"

	"github.com/go-vgo/robotgo"
	"github.com/tailscale/win"
)

var (
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procSetConsoleTitleW = kernel32.NewProc("SetConsoleTitleW")
)

func SetConsoleTitle(title string) {
	titlePtr, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		panic("获取窗口标题失败")
	}
	ret, _, _ := procSetConsoleTitleW.Call(uintptr(unsafe.Pointer(titlePtr)))
	if ret == 0 {
		panic("修改窗口标题失败")
	}
}

// resizeCli 把命令行窗口放到游戏窗口右侧, 避免挡住水面
func resizeCli() {
	w, h := robotgo.GetScreenSize()
	hwnd := robotgo.FindWindow(Title)
	if !win.SetWindowPos(hwnd, win.HWND_TOP, 1280, 0, int32(w-1280), int32(min(h, 800)), win.SWP_SHOWWINDOW) {
		log.Println("[启动器] 调整当前窗口大小失败")
	}
}
