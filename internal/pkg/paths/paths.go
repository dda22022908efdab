package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

var (
	projectRoot string
)

// GetAbsolutePath 相对路径基于项目根目录; 找不到根目录时(例如单独分发的可执行文件)退回到可执行文件所在目录
func GetAbsolutePath(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	if projectRoot == "" {
		if err := initProjectRoot(); err != nil {
			projectRoot = executableDir()
		}
	}
	return filepath.Join(projectRoot, relativePath)
}

// FromWorkingDir 命令行传入的相对路径基于当前工作目录
func FromWorkingDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("解析路径 %s 失败: %w", path, err)
	}
	return abs, nil
}

// EnsureDir 确保文件所在目录存在
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建目录 %s 失败: %w", dir, err)
	}
	return nil
}

func initProjectRoot() error {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("无法获取调用者信息")
	}
	return findRoot(filepath.Dir(filename))
}

func findRoot(dir string) error {
	for i := 0; i < 10; i++ { // 最多回溯10层
		if isProjectRoot(dir) {
			projectRoot = dir
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return fmt.Errorf("未找到项目根目录")
}

func isProjectRoot(dir string) bool {
	markers := []string{"go.mod", ".git", "project.root"}
	for _, marker := range markers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
