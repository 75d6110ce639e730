package source_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/easyops/telepager-go/pkg/core/record"
	"github.com/easyops/telepager-go/pkg/source"
)

func TestSliceSource_OrderAndExhaustion(t *testing.T) {
	src := source.NewSlice([]record.Record[int]{
		record.New("a", 2, 1),
		record.New("b", 2, 2),
	})
	ctx := context.Background()

	for i, want := range []string{"a", "b"} {
		rec, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
		if rec.Text != want {
			t.Fatalf("expected %q at %d, got %q", want, i, rec.Text)
		}
	}

	if _, err := src.Next(ctx); !errors.Is(err, source.ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	// 耗尽后保持耗尽
	if _, err := src.Next(ctx); !errors.Is(err, source.ErrExhausted) {
		t.Fatalf("expected ErrExhausted on repeat, got %v", err)
	}
}

func TestSliceSource_ContextCanceled(t *testing.T) {
	src := source.NewSlice([]record.Record[int]{record.New("a", 2, 1)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFuncSource_LatchesAfterExhaustion(t *testing.T) {
	calls := 0
	src := source.NewFunc(func(ctx context.Context) (record.Record[int], error) {
		calls++
		if calls > 2 {
			return record.Record[int]{}, source.ErrExhausted
		}
		return record.New(strconv.Itoa(calls), 2, calls), nil
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := src.Next(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := src.Next(ctx); !errors.Is(err, source.ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}

	// 终止态下不再触发生成器
	if _, err := src.Next(ctx); !errors.Is(err, source.ErrExhausted) {
		t.Fatalf("expected ErrExhausted after latch, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected generator untouched after latch, got %d calls", calls)
	}
}

func TestFuncSource_LatchesAfterFailure(t *testing.T) {
	errBoom := errors.New("boom")
	calls := 0
	src := source.NewFunc(func(ctx context.Context) (record.Record[int], error) {
		calls++
		return record.Record[int]{}, errBoom
	})
	ctx := context.Background()

	if _, err := src.Next(ctx); !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	// 失败后同样进入终止态
	if _, err := src.Next(ctx); !errors.Is(err, source.ErrExhausted) {
		t.Fatalf("expected ErrExhausted after failure, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single generator call, got %d", calls)
	}
}

func TestFuncSource_ReentrantAdvanceReturnsBusy(t *testing.T) {
	var src *source.FuncSource[int]
	src = source.NewFunc(func(ctx context.Context) (record.Record[int], error) {
		// 生成器内部再次推进同一个源
		if _, err := src.Next(ctx); !errors.Is(err, source.ErrBusy) {
			t.Fatalf("expected ErrBusy from reentrant call, got %v", err)
		}
		return record.New("ok", 2, 1), nil
	})

	rec, err := src.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Text != "ok" {
		t.Fatalf("unexpected record: %q", rec.Text)
	}
}

func TestChanSource_ConsumesUntilClose(t *testing.T) {
	ch := make(chan record.Record[int], 2)
	ch <- record.New("a", 2, 1)
	ch <- record.New("b", 2, 2)
	close(ch)

	src := source.NewChan(ch)
	ctx := context.Background()

	for _, want := range []string{"a", "b"} {
		rec, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Text != want {
			t.Fatalf("expected %q, got %q", want, rec.Text)
		}
	}

	if _, err := src.Next(ctx); !errors.Is(err, source.ErrExhausted) {
		t.Fatalf("expected ErrExhausted after close, got %v", err)
	}
}

func TestChanSource_ContextCanceledWhileBlocked(t *testing.T) {
	ch := make(chan record.Record[int])
	src := source.NewChan(ch)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := src.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
