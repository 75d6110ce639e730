// Package pager 实现增量抓取与记录到页的流水线
//
// 核心链路：Source → Fetcher 缓冲 → 质量过滤 → 可选排序 →
// 分块 → PageBuilder 渲染 → PageBook，并把平均页大小回馈给
// Fetcher 用于后续页数预估。
package pager

import (
	"context"
	"errors"
	"sync"

	"github.com/easyops/telepager-go/pkg/core/record"
	"github.com/easyops/telepager-go/pkg/otel"
	"github.com/easyops/telepager-go/pkg/source"
)

// DefaultFetchStep 默认单次抓取上限
const DefaultFetchStep = 50

// Fetcher 惰性记录源上的增量抓取器
//
// 持有只增不减的记录缓冲。互斥锁只保证同一实例上并发 FetchMore
// 的互斥（串行化），不做请求去重：排队的调用拿到锁后仍各自执行
// 一次独立的批量拉取。锁也不覆盖 Records 的并发读，抓取与读取
// 的先后顺序由调用方约定（见包文档）。
type Fetcher[T any] struct {
	mu      sync.Mutex
	src     source.Source[T]
	step    int
	records []record.Record[T]
	alive   bool

	// averagePageSize 由 RecordManager 在每次构建出非空 PageBook
	// 后回写，0 表示尚无估计
	averagePageSize int

	logger  otel.Logger
	metrics otel.Metrics
}

// FetcherOption 配置选项
type FetcherOption[T any] func(*Fetcher[T])

// WithFetcherLogger 设置日志器
func WithFetcherLogger[T any](logger otel.Logger) FetcherOption[T] {
	return func(f *Fetcher[T]) {
		f.logger = logger
	}
}

// WithFetcherMetrics 设置指标收集器
func WithFetcherMetrics[T any](metrics otel.Metrics) FetcherOption[T] {
	return func(f *Fetcher[T]) {
		f.metrics = metrics
	}
}

// NewFetcher 创建抓取器
//
// step 为单次 FetchMore 拉取的记录数上限（含），非正值使用
// DefaultFetchStep。
func NewFetcher[T any](step int, src source.Source[T], opts ...FetcherOption[T]) *Fetcher[T] {
	if step <= 0 {
		step = DefaultFetchStep
	}

	f := &Fetcher[T]{
		src:     src,
		step:    step,
		alive:   true,
		logger:  otel.NewNoopLogger(),
		metrics: otel.NewNoopMetrics(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FetchMore 拉取一批记录追加到缓冲
//
// 源返回 source.ErrExhausted 或 source.ErrBusy 时把抓取器标记为
// 永久耗尽并正常返回——耗尽是正常终止而非失败。其余源错误原样
// 上抛，且不改变存活状态。耗尽后再调用是廉价空操作。
func (f *Fetcher[T]) FetchMore(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.alive {
		return nil
	}

	pulled := 0
	for i := 0; i < f.step; i++ {
		rec, err := f.src.Next(ctx)
		if err != nil {
			if errors.Is(err, source.ErrExhausted) || errors.Is(err, source.ErrBusy) {
				f.alive = false
				f.metrics.Counter(otel.MetricPagerExhaustions).Add(ctx, 1)
				f.logger.Debug("source exhausted", "records", len(f.records))
				break
			}
			return err
		}
		f.records = append(f.records, rec)
		pulled++
	}

	f.metrics.Counter(otel.MetricPagerFetches).Add(ctx, 1)
	f.metrics.Counter(otel.MetricPagerRecordsFetched).Add(ctx, int64(pulled))
	return nil
}

// FetchAll 反复抓取直到源耗尽
//
// 耗尽后再调用是幂等空操作。
func (f *Fetcher[T]) FetchAll(ctx context.Context) error {
	for !f.AllFetched() {
		if err := f.FetchMore(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Records 返回当前记录缓冲
//
// 缓冲只增不减，过滤与排序均在副本上进行、绝不改写它。
// 调用方需保证读取发生在抓取完成之后。
func (f *Fetcher[T]) Records() []record.Record[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records
}

// AllFetched 源是否已耗尽
func (f *Fetcher[T]) AllFetched() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.alive
}

// FetchedPages 按当前平均页大小估算的页数
//
// 尚无估计时第二个返回值为 false。估算值仅是预测，非权威。
func (f *Fetcher[T]) FetchedPages() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.averagePageSize == 0 {
		return 0, false
	}

	n := len(f.records) / f.averagePageSize
	if len(f.records)%f.averagePageSize != 0 {
		n++
	}
	return n, true
}

// AveragePageSize 当前平均页大小估计，0 表示尚无估计
func (f *Fetcher[T]) AveragePageSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.averagePageSize
}

// setAveragePageSize 回写平均页大小估计
//
// 仅由 RecordManager 在构建出非空 PageBook 后调用。
func (f *Fetcher[T]) setAveragePageSize(size int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.averagePageSize = size
}
