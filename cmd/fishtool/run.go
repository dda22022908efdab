package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/config"
	"fishing-tool/internal/detector"
	"fishing-tool/internal/game"
	"fishing-tool/internal/geom"
	"fishing-tool/internal/history"
	"fishing-tool/internal/input"
	"fishing-tool/internal/listener"
	"fishing-tool/internal/pkg/paths"
	"fishing-tool/internal/pkg/sleeper"
	"fishing-tool/internal/platform"
	"fishing-tool/internal/selector"
	"fishing-tool/internal/strategy"
	"fishing-tool/internal/strategy/strategies/fishing"

	cli "github.com/spf13/cobra"
)

func Run(cmd *cli.Command, args []string) {
	SetConsoleTitle(Title)
	showReadMe()

	session, params, err := loadSettings()
	if err != nil {
		fmt.Println("[启动器] ", err)
		return
	}

	option := chooseOption(session)
	fmt.Printf("[启动器] 参数识别 [方案:%s] [模式:%s] [次数:%d] [下一轮开始前等待秒数:%d]\n",
		option.Strategy, option.Mode, option.Times, option.Interval)
	resizeCli()
	showDescription(option)

	inj, err := platform.NewInjector()
	if err != nil {
		fmt.Println("[启动器] ", err)
		return
	}
	injector = inj

	provider, err := platform.NewCapture(session.GetCaptureBackend())
	if err != nil {
		fmt.Println("[启动器] ", err)
		return
	}

	// 游戏窗体 或 进程
	g, err := game.NewGame(session.GetProcess(), session.GetWindowTitle())
	if err != nil {
		fmt.Println("[启动器] ", err)
		return
	}
	size := session.GetWindowSize()
	if err := g.Initialize(size.Width, size.Height); err != nil {
		fmt.Println("[启动器] ", err)
		return
	}

	if flagSelect {
		region, err := selectRegion(provider)
		if err != nil {
			fmt.Println("[启动器] ", err)
			return
		}
		params.SearchRegion = region
	}
	if err := checkSearchRegion(params, g); err != nil {
		fmt.Println("[启动器] ", err)
		return
	}

	store, err := openHistory(session)
	if err != nil {
		fmt.Println("[启动器] ", err)
		return
	}
	if store != nil {
		defer store.Close()
	}

	// 策略选择
	registry := strategy.NewRegistry()
	RegisterStrategies(registry)

	s, err := strategy.NewSelector(registry).Select(option.Strategy, option.Mode)
	if err != nil {
		fmt.Println("[启动器] ", err)
		return
	}

	tracked := input.NewTracked(inj)
	execConfig := &strategy.ExecutionConfig{
		Window:  g,
		Capture: provider,
		Input:   tracked,
		Clock:   sleeper.RealClock{},
		Params:  params,
		Options: strategy.Options{
			CastKey:     session.GetCastKey(),
			KeyHold:     session.GetKeyHold(),
			TraceCursor: flagTrace || session.TraceCursor,
		},
		Times:    option.Times,
		Interval: time.Duration(option.Interval) * time.Second,
	}
	if store != nil {
		execConfig.History = store
	}

	// 特殊按键监听器
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := listener.New()
	go l.Start(ctx)

	executor := strategy.NewExecutor()
	for {
		select {
		case <-l.Open:
			if err := executor.Execute(l.RunContext(), execConfig, s); err != nil {
				log.Printf("[启动器] %v\n", err)
			}
			l.Finish()
			printSummary(store)
		case <-l.Close:
			input.ReleaseAll(inj)
			return
		}
	}
}

// loadSettings 有配置文件时读取配置文件, 否则使用内置参数
func loadSettings() (*config.SessionConfig, *detector.Params, error) {
	if flagConfig == "" {
		return &config.SessionConfig{}, fishing.DefaultParams(), nil
	}

	path, err := paths.FromWorkingDir(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, nil, err
	}
	return &cfg.Session, params, nil
}

// chooseOption 优先级: 命令行 > 配置文件 > 交互输入
func chooseOption(session *config.SessionConfig) Option {
	var option Option
	switch {
	case flagPreset > 0 && flagPreset <= len(Options):
		option = Options[flagPreset-1]
	case flagConfig != "":
		option = Option{Strategy: session.GetStrategy(), Mode: session.GetMode(), Times: session.GetTimes()}
		for _, o := range Options {
			if o.Strategy == option.Strategy && o.Mode == option.Mode {
				option.Description = o.Description
			}
		}
	default:
		option = parseScan()
	}

	option.Interval = int(session.GetInterval().Seconds())
	if flagTimes >= 0 {
		option.Times = flagTimes
	}
	return option
}

func selectRegion(provider capture.Provider) (region geom.Region, err error) {
	grid, err := provider.Capture(platform.ScreenRegion())
	if err != nil {
		return region, fmt.Errorf("截取整屏失败: %w", err)
	}
	return selector.SelectRegion(grid.Image(), Title+" | 框选浮漂搜索区域")
}

// checkSearchRegion 搜索区域必须在屏幕和游戏窗口内
func checkSearchRegion(params *detector.Params, g *game.Game) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := params.CheckWithin("屏幕", platform.ScreenRegion()); err != nil {
		return err
	}
	if err := params.CheckWithin("游戏窗口", g.Region()); err != nil {
		return err
	}
	log.Printf("[启动器] 搜索区域 %s\n", params.SearchRegion)
	return nil
}

func openHistory(session *config.SessionConfig) (*history.Store, error) {
	if flagNoHistory {
		return nil, nil
	}
	path := paths.GetAbsolutePath(session.GetHistoryPath())
	if flagHistory != "" {
		p, err := paths.FromWorkingDir(flagHistory)
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := paths.EnsureDir(path); err != nil {
		return nil, err
	}
	return history.Open(path)
}
