package pager_test

import (
	"context"
	"errors"
	"testing"

	"github.com/easyops/telepager-go/pkg/core/record"
	"github.com/easyops/telepager-go/pkg/pager"
)

func TestNaivePageBuilder_BuildPage(t *testing.T) {
	builder := pager.NewNaivePageBuilder[int]("Result is: ")
	ctx := context.Background()

	page, err := builder.BuildPage(ctx, []record.Record[int]{
		record.New("first", 2, 1),
		record.New("second", 2, 2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page == nil {
		t.Fatal("expected non-nil page")
	}
	if page.Text != "Result is: \nfirst\nsecond" {
		t.Fatalf("unexpected page text: %q", page.Text)
	}
}

func TestNaivePageBuilder_BuildPageEmptyInput(t *testing.T) {
	builder := pager.NewNaivePageBuilder[int]("Result is: ")

	page, err := builder.BuildPage(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != nil {
		t.Fatalf("expected absent page for empty input, got %q", page.Text)
	}
}

func TestNaivePageBuilder_EmptyPage(t *testing.T) {
	builder := pager.NewNaivePageBuilder[int]("Nothing here")

	page, err := builder.EmptyPage(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Text != "Nothing here" {
		t.Fatalf("unexpected empty page text: %q", page.Text)
	}
}

func TestFormattingPageBuilder_BuildPage(t *testing.T) {
	builder := pager.NewFormattingPageBuilder[int]("Items:\n{lines}\nend", "lines")

	page, err := builder.BuildPage(context.Background(), []record.Record[int]{
		record.New("one", 2, 1),
		record.New("two", 2, 2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page == nil {
		t.Fatal("expected non-nil page")
	}
	if page.Text != "Items:\none\ntwo\nend" {
		t.Fatalf("unexpected page text: %q", page.Text)
	}
}

func TestFormattingPageBuilder_BuildPageEmptyInput(t *testing.T) {
	builder := pager.NewFormattingPageBuilder[int]("Items:\n{lines}", "lines")

	page, err := builder.BuildPage(context.Background(), []record.Record[int]{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != nil {
		t.Fatalf("expected absent page for empty input, got %q", page.Text)
	}
}

func TestFormattingPageBuilder_EmptyPageDefault(t *testing.T) {
	builder := pager.NewFormattingPageBuilder[int]("Items:\n{lines}", "lines")

	page, err := builder.EmptyPage(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Text != "Items:\n" {
		t.Fatalf("unexpected empty page text: %q", page.Text)
	}
}

func TestFormattingPageBuilder_EmptyPageConfiguredText(t *testing.T) {
	builder := pager.NewFormattingPageBuilder[int]("Items:\n{lines}", "lines",
		pager.WithEmptyPageText[int]("no items"),
	)

	page, err := builder.EmptyPage(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Text != "Items:\nno items" {
		t.Fatalf("unexpected empty page text: %q", page.Text)
	}
}

func TestBaseBuilder_OrderByUnsupported(t *testing.T) {
	builder := pager.NewNaivePageBuilder[int]("prefix")

	_, err := builder.OrderBy(context.Background(), sampleRecords(), 2)
	if !errors.Is(err, pager.ErrOrderingUnsupported) {
		t.Fatalf("expected ErrOrderingUnsupported, got %v", err)
	}
}
