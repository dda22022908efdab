package main

import (
	"bufio"
	"fmt"
	"os"

	"fishing-tool/internal/input"
	"fishing-tool/internal/strategy"
	"fishing-tool/internal/strategy/strategies/fishing"

	cli "github.com/spf13/cobra"
)

type Option struct {
	Strategy    string
	Mode        string
	Times       int
	Interval    int // 秒
	Description string
}

const Title string = "钓鱼助手"

var Options []Option = []Option{
	{Strategy: "钓鱼", Mode: fishing.MODE_STANDARD, Times: 0, Interval: 5, Description: "拾取时按住shift右键, 适用于未开启自动拾取的角色"},
	{Strategy: "钓鱼", Mode: fishing.MODE_AUTO_LOOT, Times: 0, Interval: 5, Description: "游戏内已开启自动拾取, 咬钩后直接右键浮漂"},
}

var (
	rootCmd = &cli.Command{
		Use:   "fishtool",
		Short: "根据画面变化自动钓鱼: 抛竿, 找浮漂, 等水花, 拾取",
		Run:   Run,
	}

	flagConfig    string
	flagPreset    int
	flagTimes     int
	flagSelect    bool
	flagHistory   string
	flagNoHistory bool
	flagTrace     bool
)

// 程序异常退出时用来兜底抬起按键
var injector input.Injector

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "JSON配置文件, 不指定时使用内置参数")
	rootCmd.Flags().IntVarP(&flagPreset, "preset", "p", 0, "方案序号(从1开始), 不指定时交互选择")
	rootCmd.Flags().IntVarP(&flagTimes, "times", "t", -1, "执行次数, 0表示不限")
	rootCmd.Flags().BoolVar(&flagSelect, "select", false, "启动时手动框选浮漂搜索区域")
	rootCmd.Flags().StringVar(&flagHistory, "history", "", "抛竿记录数据库路径")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "不保存抛竿记录")
	rootCmd.Flags().BoolVar(&flagTrace, "trace", false, "用鼠标描出命中点和水花检测框(调参用)")
}

func RegisterStrategies(registry *strategy.Registry) {
	registry.Register(fishing.NewFishingStrategy(fishing.MODE_STANDARD, fishing.LootShiftRight))
	registry.Register(fishing.NewFishingStrategy(fishing.MODE_AUTO_LOOT, fishing.LootRight))
}

func main() {
	defer handlePanic()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseScan() Option {
	var index int
	var times int

	fmt.Println("当前支持的方案: ")
	for i, o := range Options {
		fmt.Printf("%d. %s (%s)\n", i+1, o.Strategy, o.Mode)
	}
	for {
		fmt.Print("请选择方案(按下回车确认): ")
		fmt.Scanln(&index)
		if index <= 0 || index > len(Options) {
			fmt.Println("尚未支持该方案")
			continue
		} else {
			break
		}
	}
	option := Options[index-1]

	for {
		fmt.Print("要进行的次数(默认:不限): ")
		fmt.Scanln(&times)
		if times == 0 {
			times = option.Times
			break
		}
		if times < 1 || times > 999 {
			fmt.Println("请输入1~999范围内的次数")
			continue
		} else {
			break
		}
	}
	option.Times = times
	fmt.Printf("\n\n")

	return option
}

func showReadMe() {
	fmt.Println("声明: 本软件仅供个人学习使用。")
	fmt.Println("软件使用须知: ")
	fmt.Println("- 请将游戏改为窗口化, 镜头对准水面, 关闭会遮挡水面的界面")
	fmt.Println("- 抛竿技能需放在动作条的 1 号位(可在配置文件中修改 cast_key)")
	fmt.Println("- 搜索区域内不要有其他玩家走动或持续变化的特效, 会造成误判")
	fmt.Println("- 第一次使用建议加上 --select 手动框选水面, 再配合 --trace 观察命中点")
	fmt.Println("补充: ")
	fmt.Println("- 程序完全基于画面变化进行, 使用时切换窗口会影响识别;")
	fmt.Println("- 程序使用时会占用键盘、鼠标, 使用期间自行操控可能遇到程序抢手现象;")
	fmt.Println("- 使用结束后, 请按正常流程退出本软件 (按下F10 -> 等待本轮结束 -> 关闭命令窗口);")
	fmt.Println("- 退出本软件后, 如果遇到键盘的不合理行为, 可尝试逐个按下shift、ctrl、alt解决;")
	fmt.Printf("\n\n")
}

func showDescription(option Option) {
	description := "无要求"
	if len(option.Description) > 0 {
		description = option.Description
	}

	fmt.Printf("本方案需注意: %s\n\n", description)
}

func handlePanic() {
	if r := recover(); r != nil {
		if injector != nil {
			input.ReleaseAll(injector)
		}
		fmt.Println("\n============ 异常捕获 ===============")
		fmt.Printf("异常信息: %v\n", r)

		fmt.Print("按任意键退出程序...")
		bufio.NewReader(os.Stdin).ReadString('\n')
	}
}
