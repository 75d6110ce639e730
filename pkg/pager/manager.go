package pager

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/easyops/telepager-go/pkg/core/flag"
	"github.com/easyops/telepager-go/pkg/core/record"
	"github.com/easyops/telepager-go/pkg/otel"
)

// RecordManager 记录到页的流水线编排器
//
// 串起质量过滤、可选排序、分块与页渲染，并把平均页大小回馈给
// Fetcher。过滤与排序只在缓冲的快照副本上进行。
type RecordManager[T any] struct {
	fetcher *Fetcher[T]
	sizer   PageSizer[T]
	id      string

	logger  otel.Logger
	tracer  otel.Tracer
	metrics otel.Metrics
}

// ManagerOption 配置选项
type ManagerOption[T any] func(*RecordManager[T])

// WithSizer 设置页大小策略
func WithSizer[T any](sizer PageSizer[T]) ManagerOption[T] {
	return func(m *RecordManager[T]) {
		m.sizer = sizer
	}
}

// WithLogger 设置日志器
func WithLogger[T any](logger otel.Logger) ManagerOption[T] {
	return func(m *RecordManager[T]) {
		m.logger = logger
	}
}

// WithTracer 设置追踪器
func WithTracer[T any](tracer otel.Tracer) ManagerOption[T] {
	return func(m *RecordManager[T]) {
		m.tracer = tracer
	}
}

// WithMetrics 设置指标收集器
func WithMetrics[T any](metrics otel.Metrics) ManagerOption[T] {
	return func(m *RecordManager[T]) {
		m.metrics = metrics
	}
}

// NewRecordManager 创建编排器
//
// 默认使用 FixedSizer(DefaultPageSize) 分块，观测组件默认为空实现。
func NewRecordManager[T any](fetcher *Fetcher[T], opts ...ManagerOption[T]) *RecordManager[T] {
	m := &RecordManager[T]{
		fetcher: fetcher,
		sizer:   FixedSizer[T](DefaultPageSize),
		id:      uuid.New().String(),
		logger:  otel.NewNoopLogger(),
		tracer:  otel.NewNoopTracer(),
		metrics: otel.NewNoopMetrics(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ID 返回会话标识
func (m *RecordManager[T]) ID() string {
	return m.id
}

// Fetcher 返回所属抓取器
func (m *RecordManager[T]) Fetcher() *Fetcher[T] {
	return m.fetcher
}

// BuildPageBook 从当前缓冲快照构建完整页序列
//
// 流程：质量过滤 → 可选排序 → 分块 → 逐块渲染。构建器以
// ErrOrderingUnsupported 报告未实现排序时保留过滤后的顺序；
// 构建器或策略的其他错误原样上抛。构建出非空 PageBook 时把
// len(filtered)/len(book)（整数除法）回写为抓取器的平均页大小，
// 否则保持原估计不变。返回的 PageBook 可能为空。
func (m *RecordManager[T]) BuildPageBook(
	ctx context.Context,
	askedQuality flag.Value,
	askedOrdering flag.Value,
	builder PageBuilder[T],
	qualityType *flag.Type,
) (record.PageBook, error) {
	ctx, span := m.tracer.Start(ctx, "pager.build_page_book",
		otel.WithAttributes(
			otel.PagerID(m.id),
			otel.PagerQuality(int(askedQuality)),
			otel.PagerOrdering(int(askedOrdering)),
			otel.PagerFetchStep(m.fetcher.step),
		),
	)
	defer span.End()

	startTime := time.Now()

	filtered := FilterByQuality(m.fetcher.Records(), askedQuality, qualityType)

	if askedOrdering != flag.AnyOrdering {
		ordered, err := builder.OrderBy(ctx, filtered, askedOrdering)
		switch {
		case err == nil:
			filtered = ordered
		case errors.Is(err, ErrOrderingUnsupported):
			// 构建器未实现排序，保留过滤后的顺序
		default:
			span.RecordError(err)
			span.SetStatus(otel.StatusError, err.Error())
			return nil, err
		}
	}

	book := make(record.PageBook, 0)
	for _, chunk := range m.sizer(filtered) {
		page, err := builder.BuildPage(ctx, chunk)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otel.StatusError, err.Error())
			return nil, err
		}
		if page != nil {
			book = append(book, *page)
		}
	}

	if len(book) > 0 {
		avg := len(filtered) / len(book)
		m.fetcher.setAveragePageSize(avg)
		m.metrics.Gauge(otel.MetricPagerAveragePageSize).Set(ctx, float64(avg))
	}

	m.metrics.Counter(otel.MetricPagerBooks).Add(ctx, 1)
	m.metrics.Counter(otel.MetricPagerPagesBuilt).Add(ctx, int64(len(book)))
	m.metrics.Histogram(otel.MetricPagerBuildDuration).Record(ctx, float64(time.Since(startTime).Milliseconds()))

	m.logger.WithContext(ctx).Debug("page book built",
		"pager_id", m.id,
		"filtered", len(filtered),
		"pages", len(book),
	)

	span.SetAttributes(
		otel.PagerRecordsFiltered(len(filtered)),
		otel.PagerPagesBuilt(len(book)),
	)

	return book, nil
}

// GetEmptyPage 获取空态页
//
// 某个质量对应的 PageBook 为空时由调用方使用。
func (m *RecordManager[T]) GetEmptyPage(ctx context.Context, builder PageBuilder[T]) (record.Page, error) {
	return builder.EmptyPage(ctx)
}
