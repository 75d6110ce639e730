// Package errors 定义模块的通用错误类型与辅助函数
//
// 分页核心刻意只吞掉三类错误：源耗尽/重入（视为正常终止）、
// 非法质量位值（记录被排除）、构建器未实现排序（保留原顺序）。
// 其余错误一律上抛，由调用层决定如何呈现。
package errors

import (
	"errors"
	"fmt"
)

// 通用错误
var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("invalid configuration")
)

// WrapError 包装错误并添加上下文信息
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
