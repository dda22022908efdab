// Package config 从JSON文件读取检测参数和运行选项
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fishing-tool/internal/detector"
	"fishing-tool/internal/geom"
)

// DefaultConfigPath 示例配置, 包含一套完整可用的检测参数
const DefaultConfigPath = "config/fishing.example.json"

const maxFileSize = 1 * 1024 * 1024 // 1MB

type Config struct {
	Detection DetectionConfig `json:"detection"`
	Session   SessionConfig   `json:"session"`
}

// DetectionConfig 检测参数, 必须全部填写
type DetectionConfig struct {
	SearchRegion           *geom.Region `json:"search_region,omitempty"`
	ProbeRadius            *int         `json:"probe_radius,omitempty"`
	ColorDiffThreshold     *float64     `json:"color_diff_threshold,omitempty"`
	ConfirmationIterations *int         `json:"confirmation_iterations,omitempty"`
	ConfirmationPause      *string      `json:"confirmation_pause,omitempty"` // 例如 "150ms"
	SettleDelay            *string      `json:"settle_delay,omitempty"`
	AppearRadius           *int         `json:"appear_radius,omitempty"`
	AppearThreshold        *float64     `json:"appear_threshold,omitempty"`
	FadeThreshold          *float64     `json:"fade_threshold,omitempty"`
	MaxWait                *string      `json:"max_wait,omitempty"`
}

// SessionConfig 运行选项, 未填写的字段由Get*方法给出默认值
type SessionConfig struct {
	Strategy       string  `json:"strategy,omitempty"`
	Mode           string  `json:"mode,omitempty"`
	Process        string  `json:"process,omitempty"`
	WindowTitle    string  `json:"window_title,omitempty"`
	CaptureBackend string  `json:"capture_backend,omitempty"`
	Times          *int    `json:"times,omitempty"`
	Interval       *string `json:"interval,omitempty"`
	CastKey        string  `json:"cast_key,omitempty"`
	KeyHold        *string `json:"key_hold,omitempty"`
	TraceCursor    bool    `json:"trace_cursor,omitempty"`
	HistoryPath    string  `json:"history_path,omitempty"`
	WindowSize     *Size   `json:"window_size,omitempty"` // 0x0 表示不调整游戏窗口
}

type Size struct {
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

// DefaultWindowSize 内置检测参数按这个窗口大小标定
var DefaultWindowSize = Size{Width: 1280, Height: 800}

func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("配置文件必须是.json格式, 实际为 %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件信息失败: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("配置文件过大: %d 字节 (最大 %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}

	s := &c.Session
	if s.Times != nil && *s.Times < 0 {
		return fmt.Errorf("times 不能为负数: %d", *s.Times)
	}
	if _, err := parseOptionalDuration("interval", s.Interval); err != nil {
		return err
	}
	if _, err := parseOptionalDuration("key_hold", s.KeyHold); err != nil {
		return err
	}
	if w := s.WindowSize; w != nil && (w.Width < 0 || w.Height < 0 || (w.Width == 0) != (w.Height == 0)) {
		return fmt.Errorf("window_size 无效: %d x %d", w.Width, w.Height)
	}
	switch s.CaptureBackend {
	case "", "robotgo", "screenshot":
	default:
		return fmt.Errorf("未知的截图方式: %q", s.CaptureBackend)
	}
	return nil
}

// Params 转换为检测参数, 缺少任何字段都视为错误
func (c *Config) Params() (*detector.Params, error) {
	d := &c.Detection

	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("search_region", d.SearchRegion != nil)
	check("probe_radius", d.ProbeRadius != nil)
	check("color_diff_threshold", d.ColorDiffThreshold != nil)
	check("confirmation_iterations", d.ConfirmationIterations != nil)
	check("confirmation_pause", d.ConfirmationPause != nil)
	check("settle_delay", d.SettleDelay != nil)
	check("appear_radius", d.AppearRadius != nil)
	check("appear_threshold", d.AppearThreshold != nil)
	check("fade_threshold", d.FadeThreshold != nil)
	check("max_wait", d.MaxWait != nil)
	if len(missing) > 0 {
		return nil, fmt.Errorf("检测参数缺少字段: %s", strings.Join(missing, ", "))
	}

	pause, err := parseDuration("confirmation_pause", *d.ConfirmationPause)
	if err != nil {
		return nil, err
	}
	settle, err := parseDuration("settle_delay", *d.SettleDelay)
	if err != nil {
		return nil, err
	}
	maxWait, err := parseDuration("max_wait", *d.MaxWait)
	if err != nil {
		return nil, err
	}

	params := &detector.Params{
		SearchRegion:           *d.SearchRegion,
		ProbeRadius:            *d.ProbeRadius,
		ColorDiffThreshold:     *d.ColorDiffThreshold,
		ConfirmationIterations: *d.ConfirmationIterations,
		ConfirmationPause:      pause,
		SettleDelay:            settle,
		AppearRadius:           *d.AppearRadius,
		AppearThreshold:        *d.AppearThreshold,
		FadeThreshold:          *d.FadeThreshold,
		MaxWaitDuration:        maxWait,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

func (s *SessionConfig) GetStrategy() string {
	return stringOr(s.Strategy, "钓鱼")
}

func (s *SessionConfig) GetMode() string {
	return stringOr(s.Mode, "标准")
}

func (s *SessionConfig) GetProcess() string {
	return stringOr(s.Process, "Wow.exe")
}

func (s *SessionConfig) GetWindowTitle() string {
	return stringOr(s.WindowTitle, "魔兽世界")
}

func (s *SessionConfig) GetCaptureBackend() string {
	return stringOr(s.CaptureBackend, "robotgo")
}

func (s *SessionConfig) GetCastKey() string {
	return stringOr(s.CastKey, "1")
}

func (s *SessionConfig) GetHistoryPath() string {
	return stringOr(s.HistoryPath, "data/history.db")
}

// GetTimes 0表示不限次数
func (s *SessionConfig) GetTimes() int {
	if s.Times == nil {
		return 0
	}
	return *s.Times
}

// GetInterval 两轮之间的等待时间, 已经过Validate校验
func (s *SessionConfig) GetInterval() time.Duration {
	if s.Interval == nil {
		return 5 * time.Second
	}
	d, _ := time.ParseDuration(*s.Interval)
	return d
}

func (s *SessionConfig) GetKeyHold() time.Duration {
	if s.KeyHold == nil {
		return 100 * time.Millisecond
	}
	d, _ := time.ParseDuration(*s.KeyHold)
	return d
}

// GetWindowSize 启动时把游戏窗口调整到的大小
func (s *SessionConfig) GetWindowSize() Size {
	if s.WindowSize == nil {
		return DefaultWindowSize
	}
	return *s.WindowSize
}

func stringOr(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func parseDuration(name string, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s 不是有效的时长 %q: %w", name, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s 不能为负数: %s", name, value)
	}
	return d, nil
}

func parseOptionalDuration(name string, value *string) (time.Duration, error) {
	if value == nil {
		return 0, nil
	}
	return parseDuration(name, *value)
}
