package model

import (
	"errors"
	"fmt"
	"strings"
)

// 管线错误类型。加载/过滤失败只影响当前这一次渲染，
// 由 API 层转换为对应图表或指标位置上的错误信息。
var (
	// ErrEmptyRange 选定年份区间内没有任何数据行
	ErrEmptyRange = errors.New("no rows in selected year range")
	// ErrInvalidRange 年份区间下界大于上界
	ErrInvalidRange = errors.New("invalid year range: lower bound exceeds upper bound")
)

// SchemaError 结果文件缺少必需列
type SchemaError struct {
	File    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.File, strings.Join(e.Missing, ", "))
}

// ParseError 单元格无法按声明类型解析
type ParseError struct {
	File   string
	Row    int    // 数据行号（不含表头，从 1 开始）
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: row %d, column %s: cannot parse %q: %v", e.File, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
