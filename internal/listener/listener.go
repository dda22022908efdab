package listener

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	hook "github.com/robotn/gohook"
)

// 负责监听用户输出的 F9/F10 等按键指令
// F9 开始一次执行, F10 取消当前执行的context, 执行器在两轮之间退出
type Listener struct {
	state int32
	Open  chan int      // F9 触发后写入
	Close chan struct{} // 监听器卸载后关闭

	mu     sync.Mutex
	runCtx context.Context
	cancel context.CancelFunc
	once   sync.Once
}

const (
	STATE_CREATE int32 = iota
	STATE_READY
	STATE_RUNNING
	STATE_STOPPING
)

func New() *Listener {
	return &Listener{
		state: STATE_CREATE,
		Open:  make(chan int, 1),
		Close: make(chan struct{}),
	}
}

// Start 装载热键, 阻塞到ctx结束或收到退出信号
func (l *Listener) Start(ctx context.Context) {
	val := atomic.CompareAndSwapInt32(&l.state, STATE_CREATE, STATE_READY)
	if val {
		l.run0(ctx)
	}
}

func (l *Listener) run0(ctx context.Context) {
	hook.Register(hook.KeyDown, []string{"f9"}, func(e hook.Event) {
		if ok := atomic.CompareAndSwapInt32(&l.state, STATE_READY, STATE_RUNNING); ok {
			l.mu.Lock()
			l.runCtx, l.cancel = context.WithCancel(ctx)
			l.mu.Unlock()
			l.Open <- 1
			log.Println("[状态控制器] 检测到F9输入, 开始执行任务.")
		}
	})

	hook.Register(hook.KeyDown, []string{"f10"}, func(e hook.Event) {
		if ok := atomic.CompareAndSwapInt32(&l.state, STATE_RUNNING, STATE_STOPPING); ok {
			log.Println("[状态控制器] 检测到F10输入, 本轮结束后停止.")
			l.stopRun()
		}
	})

	fmt.Println("[状态控制器] 状态控制器已装载 F9:开始 F10:结束")
	fmt.Printf("\n")

	chain := hook.Start()
	defer l.Release()

	go func() {
		<-hook.Process(chain) // 这东西会永久阻塞当前协程，造成defer无法执行，进而导致多次按键事件叠加
		log.Println("[状态控制器] 状态控制器已卸载")
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case <-signals:
	case <-ctx.Done():
	}
}

// RunContext F9开始的这次执行使用的context, F10或卸载时取消
func (l *Listener) RunContext() context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.runCtx == nil {
		return context.Background()
	}
	return l.runCtx
}

// Finish 执行器返回后调用, 回到等待F9的状态
func (l *Listener) Finish() {
	l.stopRun()
	atomic.CompareAndSwapInt32(&l.state, STATE_RUNNING, STATE_READY)
	atomic.CompareAndSwapInt32(&l.state, STATE_STOPPING, STATE_READY)
	log.Println("[状态控制器] 已停止, 按F9重新开始")
}

func (l *Listener) stopRun() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
}

func (l *Listener) Release() {
	l.once.Do(func() {
		hook.End()
		time.Sleep(1 * time.Second) // 很奇怪的东西，hook关闭不彻底会导致下次启动失败(重启进程也不行)

		l.stopRun()
		close(l.Close)
	})
}
