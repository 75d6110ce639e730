// Package flag 定义质量与排序使用的位标志类型
//
// 质量（Quality）与排序（Ordering）都以小整数位掩码表达。
// 合法的位值从 2 开始，0 与 1 保留给 AnyQuality / AnyOrdering 哨兵值。
// Parse 为严格校验构造：未声明的位组合会返回错误而不是被静默接受，
// 过滤器据此把非法记录当作"不匹配"处理。
package flag

import (
	"errors"
	"fmt"
	"strings"
)

// 哨兵值，保留位 0 与 1
const (
	// AnyQuality 不做质量过滤
	AnyQuality Value = 0
	// AnyOrdering 不做排序
	AnyOrdering Value = 1
)

// 位标志相关错误
var (
	// ErrInvalidFlag 位值未在类型中声明
	ErrInvalidFlag = errors.New("invalid flag value")
	// ErrInvalidMember 成员声明非法（非单一位或落入哨兵区间）
	ErrInvalidMember = errors.New("invalid flag member")
)

// Value 位掩码标志值
type Value int

// Contains 判断 sub 是否为 v 的位子集
func (v Value) Contains(sub Value) bool {
	return v&sub == sub
}

// Member 类型中的一个已声明位
type Member struct {
	// Value 位值，必须是 >= 2 的单一位
	Value Value
	// Names 按语言代码索引的展示名称
	Names map[string]string
}

// Type 一个位标志枚举类型
//
// 持有全部已声明成员及其本地化名称。已声明位的任意组合都是合法值；
// 含未声明位的整数会被 Parse 拒绝。
type Type struct {
	name    string
	mask    Value
	names   map[Value]map[string]string
	members []Value
}

// NewType 创建位标志类型
func NewType(name string, members ...Member) (*Type, error) {
	t := &Type{
		name:  name,
		names: make(map[Value]map[string]string, len(members)),
	}

	for _, m := range members {
		// 单一位检查：排除 0、1 与多位组合
		if m.Value < 2 || m.Value&(m.Value-1) != 0 {
			return nil, fmt.Errorf("%w: %s=%d", ErrInvalidMember, name, m.Value)
		}
		if _, exists := t.names[m.Value]; exists {
			return nil, fmt.Errorf("%w: duplicate %s=%d", ErrInvalidMember, name, m.Value)
		}
		t.mask |= m.Value
		t.names[m.Value] = m.Names
		t.members = append(t.members, m.Value)
	}

	return t, nil
}

// MustType 创建位标志类型，失败则 panic
//
// 用于包级变量声明处的固定枚举。
func MustType(name string, members ...Member) *Type {
	t, err := NewType(name, members...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name 返回类型名称
func (t *Type) Name() string {
	return t.name
}

// Members 返回已声明的位值（声明顺序）
func (t *Type) Members() []Value {
	out := make([]Value, len(t.members))
	copy(out, t.members)
	return out
}

// Parse 从原始整数严格构造标志值
//
// 0、哨兵区间的值以及任何含未声明位的组合都会返回 ErrInvalidFlag。
func (t *Type) Parse(raw int) (Value, error) {
	v := Value(raw)
	if v < 2 {
		return 0, fmt.Errorf("%w: %s=%d", ErrInvalidFlag, t.name, raw)
	}
	if v&^t.mask != 0 {
		return 0, fmt.Errorf("%w: %s=%d", ErrInvalidFlag, t.name, raw)
	}
	return v, nil
}

// ShownName 返回标志值的本地化展示名称
//
// 组合值按成员声明顺序用 "|" 连接；缺失的语言回退到英语，
// 再缺失则回退到 "TypeName(bit)" 形式。非法值返回空串。
func (t *Type) ShownName(v Value, lang string) string {
	if _, err := t.Parse(int(v)); err != nil {
		return ""
	}

	var parts []string
	for _, m := range t.members {
		if v&m == 0 {
			continue
		}
		names := t.names[m]
		name, ok := names[lang]
		if !ok {
			name, ok = names["en"]
		}
		if !ok {
			name = fmt.Sprintf("%s(%d)", t.name, m)
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "|")
}
