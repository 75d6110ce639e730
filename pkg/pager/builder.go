package pager

import (
	"context"
	"errors"
	"strings"

	"github.com/easyops/telepager-go/pkg/core/flag"
	"github.com/easyops/telepager-go/pkg/core/record"
)

// ErrOrderingUnsupported 构建器未实现排序
//
// 作为哨兵与"实现为恒等变换"相区分：编排器据此保留原有顺序，
// 而不是误把未实现当作已排序。
var ErrOrderingUnsupported = errors.New("ordering not supported by builder")

// PageBuilder 把一组记录渲染为页的能力集合
//
// BuildPage 对空记录列表必须返回 nil 页（"这个分块没有内容可展示"），
// 与文本为空的页是两回事。OrderBy 为可选能力，默认实现返回
// ErrOrderingUnsupported。
type PageBuilder[T any] interface {
	// BuildPage 渲染一页，nil 页表示该分块无内容
	BuildPage(ctx context.Context, records []record.Record[T]) (*record.Page, error)

	// EmptyPage 渲染空态页
	//
	// 某个质量对应的 PageBook 为空时由调用方使用。
	EmptyPage(ctx context.Context) (record.Page, error)

	// OrderBy 按请求的排序值重排记录
	//
	// 未实现排序时返回 ErrOrderingUnsupported；实现方对不认识的
	// 排序值应原样返回输入而不报错。
	OrderBy(ctx context.Context, records []record.Record[T], askedOrdering flag.Value) ([]record.Record[T], error)
}

// BaseBuilder 提供默认的 OrderBy 实现
//
// 自定义构建器嵌入某个内置构建器并覆盖 OrderBy 即可支持排序。
type BaseBuilder[T any] struct{}

// OrderBy 默认不支持排序
func (BaseBuilder[T]) OrderBy(ctx context.Context, records []record.Record[T], askedOrdering flag.Value) ([]record.Record[T], error) {
	return nil, ErrOrderingUnsupported
}

// joinTexts 把记录文本按行拼接
func joinTexts[T any](records []record.Record[T]) string {
	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(rec.Text)
	}
	return sb.String()
}

// NaivePageBuilder 朴素行拼接构建器
//
// 每页以固定前缀开头，之后逐行列出记录文本。
type NaivePageBuilder[T any] struct {
	BaseBuilder[T]

	baseText string
}

// NewNaivePageBuilder 创建朴素构建器
func NewNaivePageBuilder[T any](baseText string) *NaivePageBuilder[T] {
	return &NaivePageBuilder[T]{baseText: baseText}
}

// EmptyPage 空态页只含前缀
func (b *NaivePageBuilder[T]) EmptyPage(ctx context.Context) (record.Page, error) {
	return record.Page{Text: b.baseText}, nil
}

// BuildPage 渲染前缀加逐行文本，空输入返回 nil 页
func (b *NaivePageBuilder[T]) BuildPage(ctx context.Context, records []record.Record[T]) (*record.Page, error) {
	if len(records) == 0 {
		return nil, nil
	}
	return &record.Page{Text: b.baseText + "\n" + joinTexts(records)}, nil
}

// FormattingPageBuilder 模板替换构建器
//
// 把模板中形如 {name} 的单个具名占位符替换为内容。
type FormattingPageBuilder[T any] struct {
	BaseBuilder[T]

	baseText    string
	placeholder string
	emptyText   *string
}

// FormattingOption 配置选项
type FormattingOption[T any] func(*FormattingPageBuilder[T])

// WithEmptyPageText 设置空态页占位内容
//
// 未设置时空态页用空串替换占位符。
func WithEmptyPageText[T any](text string) FormattingOption[T] {
	return func(b *FormattingPageBuilder[T]) {
		b.emptyText = &text
	}
}

// NewFormattingPageBuilder 创建模板构建器
//
// placeholder 为模板中占位符的名字（不含花括号）。
func NewFormattingPageBuilder[T any](baseText, placeholder string, opts ...FormattingOption[T]) *FormattingPageBuilder[T] {
	b := &FormattingPageBuilder[T]{
		baseText:    baseText,
		placeholder: placeholder,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// format 替换模板占位符
func (b *FormattingPageBuilder[T]) format(content string) string {
	return strings.ReplaceAll(b.baseText, "{"+b.placeholder+"}", content)
}

// EmptyPage 用配置的空态文本或空串渲染模板
func (b *FormattingPageBuilder[T]) EmptyPage(ctx context.Context) (record.Page, error) {
	content := ""
	if b.emptyText != nil {
		content = *b.emptyText
	}
	return record.Page{Text: b.format(content)}, nil
}

// BuildPage 用逐行文本渲染模板，空输入返回 nil 页
func (b *FormattingPageBuilder[T]) BuildPage(ctx context.Context, records []record.Record[T]) (*record.Page, error) {
	if len(records) == 0 {
		return nil, nil
	}
	return &record.Page{Text: b.format(joinTexts(records))}, nil
}

// compile-time interface check
var _ PageBuilder[int] = (*NaivePageBuilder[int])(nil)
var _ PageBuilder[int] = (*FormattingPageBuilder[int])(nil)
