// Package source 定义惰性记录源抽象及其内置实现
//
// Source 是单消费者的拉取式惰性序列。它必须用 ErrExhausted 明确标记
// 序列结束，并在被并发推进时返回 ErrBusy——Fetcher 只把这两个信号
// 识别为"耗尽"，其余错误一律向上传播。
package source

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/easyops/telepager-go/pkg/core/record"
)

// 记录源相关错误
var (
	// ErrExhausted 序列已结束
	ErrExhausted = errors.New("source exhausted")
	// ErrBusy 源正在被另一个调用推进
	ErrBusy = errors.New("source already being advanced")
)

// Source 拉取式惰性记录序列
type Source[T any] interface {
	// Next 返回下一条记录
	//
	// 序列结束返回 ErrExhausted；检测到重入推进返回 ErrBusy；
	// 其余错误表示源本身失败。
	Next(ctx context.Context) (record.Record[T], error)
}

// guard 重入保护，进入时置位、离开时复位
type guard struct {
	busy atomic.Bool
}

// enter 尝试进入临界区，已被占用则失败
func (g *guard) enter() bool {
	return g.busy.CompareAndSwap(false, true)
}

// leave 离开临界区
func (g *guard) leave() {
	g.busy.Store(false)
}

// SliceSource 固定记录集的内存源
type SliceSource[T any] struct {
	records []record.Record[T]
	next    int
	g       guard
}

// NewSlice 创建内存源
func NewSlice[T any](records []record.Record[T]) *SliceSource[T] {
	return &SliceSource[T]{records: records}
}

// Next 返回下一条记录
func (s *SliceSource[T]) Next(ctx context.Context) (record.Record[T], error) {
	var zero record.Record[T]
	if !s.g.enter() {
		return zero, ErrBusy
	}
	defer s.g.leave()

	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if s.next >= len(s.records) {
		return zero, ErrExhausted
	}

	rec := s.records[s.next]
	s.next++
	return rec, nil
}

// NextFunc 生成器函数，结束时应返回 ErrExhausted
type NextFunc[T any] func(ctx context.Context) (record.Record[T], error)

// FuncSource 包装生成器函数的源
//
// 生成器一旦返回过 ErrExhausted 或其他错误，源进入终止态，
// 后续调用不再触发生成器。
type FuncSource[T any] struct {
	fn   NextFunc[T]
	done bool
	g    guard
}

// NewFunc 创建生成器源
func NewFunc[T any](fn NextFunc[T]) *FuncSource[T] {
	return &FuncSource[T]{fn: fn}
}

// Next 返回下一条记录
func (s *FuncSource[T]) Next(ctx context.Context) (record.Record[T], error) {
	var zero record.Record[T]
	if !s.g.enter() {
		return zero, ErrBusy
	}
	defer s.g.leave()

	if s.done {
		return zero, ErrExhausted
	}

	rec, err := s.fn(ctx)
	if err != nil {
		s.done = true
		return zero, err
	}
	return rec, nil
}

// ChanSource 从通道消费记录的源
//
// 通道关闭即视为序列结束。生产者在另一个 goroutine 中投递记录，
// 这是对接推送式数据的桥接方式。
type ChanSource[T any] struct {
	ch <-chan record.Record[T]
	g  guard
}

// NewChan 创建通道源
func NewChan[T any](ch <-chan record.Record[T]) *ChanSource[T] {
	return &ChanSource[T]{ch: ch}
}

// Next 返回下一条记录，阻塞直到有记录、通道关闭或上下文取消
func (s *ChanSource[T]) Next(ctx context.Context) (record.Record[T], error) {
	var zero record.Record[T]
	if !s.g.enter() {
		return zero, ErrBusy
	}
	defer s.g.leave()

	select {
	case rec, ok := <-s.ch:
		if !ok {
			return zero, ErrExhausted
		}
		return rec, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// compile-time interface check
var _ Source[int] = (*SliceSource[int])(nil)
var _ Source[int] = (*FuncSource[int])(nil)
var _ Source[int] = (*ChanSource[int])(nil)
