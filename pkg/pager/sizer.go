package pager

import (
	"unicode/utf8"

	"github.com/easyops/telepager-go/pkg/core/record"
)

// DefaultPageSize 默认每页记录数
const DefaultPageSize = 10

// PageSizer 页大小策略
//
// 把一组记录划分为有序分块序列，每个分块对应一页。策略必须是
// 纯函数：不改写输入，分块保持输入顺序。
type PageSizer[T any] func(records []record.Record[T]) [][]record.Record[T]

// FixedSizer 固定条数分块：每页最多 size 条记录
func FixedSizer[T any](size int) PageSizer[T] {
	if size <= 0 {
		size = DefaultPageSize
	}

	return func(records []record.Record[T]) [][]record.Record[T] {
		var chunks [][]record.Record[T]
		for start := 0; start < len(records); start += size {
			end := start + size
			if end > len(records) {
				end = len(records)
			}
			chunks = append(chunks, records[start:end:end])
		}
		return chunks
	}
}

// CharBudgetSizer 按字符预算贪心分块
//
// 依次累加记录文本的字符数（含换行），超出预算即开新块。
// 单条超预算的记录独占一块，保证每条记录都落入某个分块。
func CharBudgetSizer[T any](budget int) PageSizer[T] {
	return func(records []record.Record[T]) [][]record.Record[T] {
		return budgetChunks(records, budget, func(text string) int {
			return utf8.RuneCountInString(text)
		})
	}
}

// TokenBudgetSizer 按 Token 预算贪心分块
//
// 用 counter 计量记录文本，适合展示面直接面向模型上下文的场景。
func TokenBudgetSizer[T any](counter TokenCounter, budget int) PageSizer[T] {
	return func(records []record.Record[T]) [][]record.Record[T] {
		return budgetChunks(records, budget, counter.Count)
	}
}

// budgetChunks 通用的预算贪心分块
func budgetChunks[T any](records []record.Record[T], budget int, cost func(string) int) [][]record.Record[T] {
	if budget <= 0 {
		if len(records) == 0 {
			return nil
		}
		return [][]record.Record[T]{records}
	}

	var chunks [][]record.Record[T]
	var current []record.Record[T]
	used := 0

	for _, rec := range records {
		c := cost(rec.Text) + 1 // 换行开销
		if used+c > budget && len(current) > 0 {
			chunks = append(chunks, current)
			current = nil
			used = 0
		}
		current = append(current, rec)
		used += c
	}

	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
