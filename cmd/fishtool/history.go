package main

import (
	"fmt"
	"os"

	"fishing-tool/internal/history"
	"fishing-tool/internal/pkg/paths"

	cli "github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	historyCmd = &cli.Command{
		Use:   "history",
		Short: "查看抛竿记录, 可导出浮漂位置散点图",
		RunE:  History,
	}

	flagLimit int
	flagChart string
	flagDB    string
)

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "显示最近多少条记录")
	historyCmd.Flags().StringVar(&flagChart, "chart", "", "导出散点图到指定的html文件")
	historyCmd.Flags().StringVar(&flagDB, "db", "data/history.db", "抛竿记录数据库路径")
	rootCmd.AddCommand(historyCmd)
}

func History(cmd *cli.Command, args []string) error {
	path := paths.GetAbsolutePath(flagDB)
	if cmd.Flags().Changed("db") {
		p, err := paths.FromWorkingDir(flagDB)
		if err != nil {
			return err
		}
		path = p
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	casts, err := store.Recent(flagLimit)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.SimplifiedChinese)
	p.Printf("%-20s %-8s %-10s %-16s %6s %8s %8s\n", "时间", "方案", "结果", "位置", "命中", "权重", "耗时")
	for _, c := range casts {
		position := "-"
		if c.Found {
			position = c.Position.String()
		}
		p.Printf("%-20s %-8s %-10s %-16s %6d %8.2f %7.1fs\n",
			c.StartedAt.Format("2006-01-02 15:04:05"), c.Strategy, c.Outcome, position, c.Hits, c.Weight, c.Duration.Seconds())
	}
	fmt.Println()
	printSummary(store)

	if flagChart == "" {
		return nil
	}
	all, err := store.Recent(1 << 20)
	if err != nil {
		return err
	}
	f, err := os.Create(flagChart)
	if err != nil {
		return fmt.Errorf("创建图表文件失败: %w", err)
	}
	defer f.Close()
	if err := history.RenderChart(f, all); err != nil {
		return fmt.Errorf("生成图表失败: %w", err)
	}
	fmt.Printf("[记录器] 散点图已导出到 %s\n", flagChart)
	return nil
}

func printSummary(store *history.Store) {
	if store == nil {
		return
	}
	sum, err := store.Summary()
	if err != nil {
		fmt.Println("[记录器] ", err)
		return
	}

	p := message.NewPrinter(language.SimplifiedChinese)
	p.Printf("[记录器] 累计抛竿%d次 找到浮漂%d次(%.1f%%) 钓到%d次 浮漂消失%d次 超时%d次 出错%d次 平均权重%.2f\n",
		sum.Total, sum.Found, sum.FoundRate()*100, sum.Caught, sum.Faded, sum.TimedOut, sum.Errors, sum.MeanWeight)
}
