// Package catalog 枚举输出目录下可加载的模拟结果文件。
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry 目录中的一个结果文件，文件名原样用作展示标签
type Entry struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// IsResultFile 判断文件名是否为可加载的结果文件。
// 按真实扩展名匹配，不做文件名子串匹配。
func IsResultFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// List 非递归扫描目录，返回按文件名排序的结果文件列表
func List(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read output directory: %w", err)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsResultFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// 列目录和取详情之间文件消失，跳过即可
			continue
		}
		out = append(out, Entry{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return out, nil
}
