package pager

import (
	"github.com/easyops/telepager-go/pkg/core/flag"
	"github.com/easyops/telepager-go/pkg/core/record"
)

// FilterByQuality 按质量位掩码过滤记录
//
// askedQuality 为 flag.AnyQuality 或 qualityType 为 nil 时原样返回输入。
// 否则对每条记录用 qualityType 严格构造记录质量与请求质量两个标志值：
// 任一构造失败的记录被静默排除（不是错误）；两者都合法时，记录入选
// 当且仅当请求值是记录质量的位子集。输出保持输入顺序，输入不被改写。
func FilterByQuality[T any](records []record.Record[T], askedQuality flag.Value, qualityType *flag.Type) []record.Record[T] {
	if askedQuality == flag.AnyQuality || qualityType == nil {
		return records
	}

	asked, err := qualityType.Parse(int(askedQuality))
	if err != nil {
		// 请求值本身非法：没有记录能匹配
		return nil
	}

	var result []record.Record[T]
	for _, rec := range records {
		quality, err := qualityType.Parse(rec.Quality)
		if err != nil {
			continue
		}
		if quality.Contains(asked) {
			result = append(result, rec)
		}
	}
	return result
}
