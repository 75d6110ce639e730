package otel

// 预定义的指标名称
// 遵循 OpenTelemetry 语义约定
const (
	// 抓取指标
	MetricPagerFetches        = "pager.fetches"         // 计数器: FetchMore 调用次数
	MetricPagerRecordsFetched = "pager.records.fetched" // 计数器: 拉取的记录总数
	MetricPagerExhaustions    = "pager.exhaustions"     // 计数器: 源耗尽事件次数

	// 构建指标
	MetricPagerBooks           = "pager.books"             // 计数器: PageBook 构建次数
	MetricPagerPagesBuilt      = "pager.pages.built"       // 计数器: 渲染出的页总数
	MetricPagerBuildDuration   = "pager.build.duration"    // 直方图: PageBook 构建时间(ms)
	MetricPagerAveragePageSize = "pager.average_page_size" // 仪表: 当前平均页大小估计

	// 源指标
	MetricSourceReads        = "source.reads"         // 计数器: 源读取次数
	MetricSourceReadDuration = "source.read.duration" // 直方图: 单次读取时间(ms)
	MetricSourceErrors       = "source.errors"        // 计数器: 源致命错误次数
)

// MetricUnit 指标单位
type MetricUnit string

const (
	UnitNone         MetricUnit = ""
	UnitMilliseconds MetricUnit = "ms"
	UnitSeconds      MetricUnit = "s"
	UnitBytes        MetricUnit = "By"
	UnitCount        MetricUnit = "1"
)

// MetricDescription 指标描述
type MetricDescription struct {
	Name        string
	Description string
	Unit        MetricUnit
	Type        string // counter, histogram, gauge
}

// PredefinedMetrics 预定义指标列表
var PredefinedMetrics = []MetricDescription{
	{MetricPagerFetches, "Number of incremental fetch calls", UnitCount, "counter"},
	{MetricPagerRecordsFetched, "Number of records pulled from sources", UnitCount, "counter"},
	{MetricPagerExhaustions, "Number of source exhaustion events", UnitCount, "counter"},

	{MetricPagerBooks, "Number of page books built", UnitCount, "counter"},
	{MetricPagerPagesBuilt, "Number of pages rendered", UnitCount, "counter"},
	{MetricPagerBuildDuration, "Duration of page book builds", UnitMilliseconds, "histogram"},
	{MetricPagerAveragePageSize, "Current average page size estimate", UnitCount, "gauge"},

	{MetricSourceReads, "Number of source reads", UnitCount, "counter"},
	{MetricSourceReadDuration, "Duration of single source reads", UnitMilliseconds, "histogram"},
	{MetricSourceErrors, "Number of fatal source errors", UnitCount, "counter"},
}
