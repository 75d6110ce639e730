package flag_test

import (
	"errors"
	"testing"

	"github.com/easyops/telepager-go/pkg/core/flag"
)

func newQuality(t *testing.T) *flag.Type {
	t.Helper()
	qt, err := flag.NewType("quality",
		flag.Member{Value: 2, Names: map[string]string{"en": "Even", "zh": "偶数"}},
		flag.Member{Value: 4, Names: map[string]string{"en": "Uneven"}},
	)
	if err != nil {
		t.Fatalf("unexpected error creating type: %v", err)
	}
	return qt
}

func TestNewType_RejectsInvalidMembers(t *testing.T) {
	tests := []struct {
		name  string
		value flag.Value
	}{
		{"zero", 0},
		{"sentinel", 1},
		{"not a single bit", 6},
		{"negative", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flag.NewType("quality", flag.Member{Value: tt.value})
			if !errors.Is(err, flag.ErrInvalidMember) {
				t.Fatalf("expected ErrInvalidMember, got %v", err)
			}
		})
	}
}

func TestNewType_RejectsDuplicateMember(t *testing.T) {
	_, err := flag.NewType("quality",
		flag.Member{Value: 2},
		flag.Member{Value: 2},
	)
	if !errors.Is(err, flag.ErrInvalidMember) {
		t.Fatalf("expected ErrInvalidMember, got %v", err)
	}
}

func TestParse_Strict(t *testing.T) {
	qt := newQuality(t)

	tests := []struct {
		name    string
		raw     int
		wantErr bool
	}{
		{"declared bit", 2, false},
		{"other declared bit", 4, false},
		{"combination of declared bits", 6, false},
		{"zero", 0, true},
		{"sentinel range", 1, true},
		{"undeclared bit", 8, true},
		{"mixed declared and undeclared", 10, true},
		{"negative", -4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := qt.Parse(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, flag.ErrInvalidFlag) {
					t.Fatalf("expected ErrInvalidFlag for %d, got %v", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %d: %v", tt.raw, err)
			}
			if int(v) != tt.raw {
				t.Fatalf("expected value %d, got %d", tt.raw, v)
			}
		})
	}
}

func TestValue_Contains(t *testing.T) {
	tests := []struct {
		name string
		v    flag.Value
		sub  flag.Value
		want bool
	}{
		{"self", 2, 2, true},
		{"subset of combination", 6, 2, true},
		{"full combination", 6, 6, true},
		{"not contained", 2, 4, false},
		{"partial overlap", 2, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Contains(tt.sub); got != tt.want {
				t.Fatalf("Contains(%d, %d) = %v, want %v", tt.v, tt.sub, got, tt.want)
			}
		})
	}
}

func TestShownName(t *testing.T) {
	qt := newQuality(t)

	if got := qt.ShownName(2, "en"); got != "Even" {
		t.Fatalf("expected 'Even', got %q", got)
	}
	if got := qt.ShownName(2, "zh"); got != "偶数" {
		t.Fatalf("expected '偶数', got %q", got)
	}
	// 缺失语言回退英语
	if got := qt.ShownName(4, "zh"); got != "Uneven" {
		t.Fatalf("expected fallback 'Uneven', got %q", got)
	}
	// 组合值
	if got := qt.ShownName(6, "en"); got != "Even|Uneven" {
		t.Fatalf("expected 'Even|Uneven', got %q", got)
	}
	// 非法值
	if got := qt.ShownName(8, "en"); got != "" {
		t.Fatalf("expected empty name for invalid value, got %q", got)
	}
}

func TestMembers_PreservesDeclarationOrder(t *testing.T) {
	qt := newQuality(t)

	members := qt.Members()
	if len(members) != 2 || members[0] != 2 || members[1] != 4 {
		t.Fatalf("expected members [2 4], got %v", members)
	}
}
