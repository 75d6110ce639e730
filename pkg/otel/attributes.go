package otel

import "go.opentelemetry.io/otel/attribute"

// 预定义的语义属性键
// 遵循 OpenTelemetry 语义约定
const (
	// 分页会话相关属性
	AttrPagerID              = "pager.id"
	AttrPagerQuality         = "pager.quality"
	AttrPagerOrdering        = "pager.ordering"
	AttrPagerRecordsFiltered = "pager.records.filtered"
	AttrPagerPagesBuilt      = "pager.pages.built"
	AttrPagerFetchStep       = "pager.fetch_step"

	// 记录源相关属性
	AttrSourceKind = "source.kind"

	// Error 相关属性
	AttrErrorType    = "error.type"
	AttrErrorMessage = "error.message"
)

// PagerID 创建分页会话标识属性
func PagerID(id string) attribute.KeyValue {
	return attribute.String(AttrPagerID, id)
}

// PagerQuality 创建请求质量属性
func PagerQuality(quality int) attribute.KeyValue {
	return attribute.Int(AttrPagerQuality, quality)
}

// PagerOrdering 创建请求排序属性
func PagerOrdering(ordering int) attribute.KeyValue {
	return attribute.Int(AttrPagerOrdering, ordering)
}

// PagerRecordsFiltered 创建过滤后记录数属性
func PagerRecordsFiltered(count int) attribute.KeyValue {
	return attribute.Int(AttrPagerRecordsFiltered, count)
}

// PagerPagesBuilt 创建渲染页数属性
func PagerPagesBuilt(count int) attribute.KeyValue {
	return attribute.Int(AttrPagerPagesBuilt, count)
}

// PagerFetchStep 创建抓取步长属性
func PagerFetchStep(step int) attribute.KeyValue {
	return attribute.Int(AttrPagerFetchStep, step)
}

// SourceKind 创建记录源类型属性
func SourceKind(kind string) attribute.KeyValue {
	return attribute.String(AttrSourceKind, kind)
}

// ErrorAttrs 创建错误属性
func ErrorAttrs(errType, message string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrErrorType, errType),
		attribute.String(AttrErrorMessage, message),
	}
}
