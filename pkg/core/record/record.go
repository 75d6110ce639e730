// Package record 定义分页流水线的核心数据类型
package record

// Record 一条待分页的文本记录
//
// text 为展示文本，quality 为位掩码形式的质量标记（用于过滤），
// Meta 对核心流水线不透明，仅供用户自定义的排序逻辑使用。
// 记录一经产生即视为不可变。
type Record[T any] struct {
	// Text 展示文本
	Text string `json:"text"`
	// Quality 质量位掩码
	Quality int `json:"quality"`
	// Meta 排序用的不透明载荷
	Meta T `json:"meta,omitempty"`
}

// New 创建一条记录
func New[T any](text string, quality int, meta T) Record[T] {
	return Record[T]{Text: text, Quality: quality, Meta: meta}
}

// Page 由 PageBuilder 渲染出的一页
//
// 注意区分"空文本的页"与"没有页"：后者由 *Page 为 nil 表达，
// 表示该分块没有任何可展示的内容。
type Page struct {
	// Text 渲染后的页面文本
	Text string `json:"text"`
}

// PageBook 一次过滤/排序请求对应的完整有序页序列
//
// 每个非空分块对应一页，按分块顺序排列。
type PageBook []Page
