package otel

import (
	"context"
	"errors"
	"time"

	"github.com/easyops/telepager-go/pkg/core/record"
	"github.com/easyops/telepager-go/pkg/source"
)

// TracedSource 带追踪与指标的记录源包装器
//
// 包装任意 Source，为每次读取创建 Span 并更新源指标。
// 耗尽与重入信号不计为错误。
type TracedSource[T any] struct {
	src     source.Source[T]
	kind    string
	tracer  Tracer
	metrics Metrics
}

// TracedSourceOption 配置选项
type TracedSourceOption[T any] func(*TracedSource[T])

// WithTracedSourceTracer 设置追踪器
func WithTracedSourceTracer[T any](tracer Tracer) TracedSourceOption[T] {
	return func(s *TracedSource[T]) {
		s.tracer = tracer
	}
}

// WithTracedSourceMetrics 设置指标收集器
func WithTracedSourceMetrics[T any](metrics Metrics) TracedSourceOption[T] {
	return func(s *TracedSource[T]) {
		s.metrics = metrics
	}
}

// NewTracedSource 创建带观测的源包装器
//
// kind 作为 source.kind 属性标注在 Span 与指标上，如 "sqlite"、"neo4j"。
func NewTracedSource[T any](src source.Source[T], kind string, opts ...TracedSourceOption[T]) *TracedSource[T] {
	s := &TracedSource[T]{
		src:     src,
		kind:    kind,
		tracer:  NewNoopTracer(),
		metrics: NewNoopMetrics(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Next 读取下一条记录并记录观测数据
func (s *TracedSource[T]) Next(ctx context.Context) (record.Record[T], error) {
	ctx, span := s.tracer.Start(ctx, "source.next",
		WithSpanKind(SpanKindClient),
		WithAttributes(SourceKind(s.kind)),
	)
	defer span.End()

	startTime := time.Now()
	rec, err := s.src.Next(ctx)
	duration := time.Since(startTime)

	s.metrics.Counter(MetricSourceReads).Add(ctx, 1, NewAttr(AttrSourceKind, s.kind))
	s.metrics.Histogram(MetricSourceReadDuration).Record(ctx, float64(duration.Milliseconds()), NewAttr(AttrSourceKind, s.kind))

	if err != nil {
		// 耗尽与重入是正常终止信号，不按错误上报
		if errors.Is(err, source.ErrExhausted) || errors.Is(err, source.ErrBusy) {
			span.AddEvent("source.exhausted")
			return rec, err
		}
		s.metrics.Counter(MetricSourceErrors).Add(ctx, 1, NewAttr(AttrSourceKind, s.kind))
		span.RecordError(err)
		span.SetStatus(StatusError, err.Error())
		return rec, err
	}

	return rec, nil
}

// compile-time interface check
var _ source.Source[int] = (*TracedSource[int])(nil)
