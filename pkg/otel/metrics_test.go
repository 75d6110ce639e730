package otel_test

import (
	"context"
	"sync"
	"testing"

	"github.com/easyops/telepager-go/pkg/otel"
)

func TestInMemoryMetrics_Counter(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()
	counter := metrics.Counter(otel.MetricPagerFetches)

	ctx := context.Background()
	counter.Add(ctx, 5)
	counter.Add(ctx, 3)

	value := metrics.GetCounterValue(otel.MetricPagerFetches)
	if value != 8 {
		t.Fatalf("expected counter value 8, got %d", value)
	}
}

func TestInMemoryMetrics_CounterWithAttrs(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()
	counter := metrics.Counter(otel.MetricSourceReads)
	ctx := context.Background()

	// Should not panic with attributes
	counter.Add(ctx, 1, otel.NewAttr(otel.AttrSourceKind, "sqlite"))

	value := metrics.GetCounterValue(otel.MetricSourceReads)
	if value != 1 {
		t.Fatalf("expected counter value 1, got %d", value)
	}
}

func TestInMemoryMetrics_SameCounterReturned(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()

	counter1 := metrics.Counter("same_counter")
	counter2 := metrics.Counter("same_counter")

	ctx := context.Background()
	counter1.Add(ctx, 5)
	counter2.Add(ctx, 3)

	value := metrics.GetCounterValue("same_counter")
	if value != 8 {
		t.Fatalf("expected counter value 8, got %d", value)
	}
}

func TestInMemoryMetrics_Gauge(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()
	gauge := metrics.Gauge(otel.MetricPagerAveragePageSize)

	ctx := context.Background()
	gauge.Set(ctx, 42.5)

	value := metrics.GetGaugeValue(otel.MetricPagerAveragePageSize)
	if value != 42.5 {
		t.Fatalf("expected gauge value 42.5, got %f", value)
	}

	gauge.Set(ctx, 100.0)
	value = metrics.GetGaugeValue(otel.MetricPagerAveragePageSize)
	if value != 100.0 {
		t.Fatalf("expected gauge value 100.0, got %f", value)
	}
}

func TestInMemoryMetrics_GetNonExistent(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()

	if value := metrics.GetCounterValue("non_existent"); value != 0 {
		t.Fatalf("expected 0 for non-existent counter, got %d", value)
	}
	if value := metrics.GetGaugeValue("non_existent"); value != 0 {
		t.Fatalf("expected 0 for non-existent gauge, got %f", value)
	}
}

func TestInMemoryMetrics_ConcurrentAccess(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()
	ctx := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counter := metrics.Counter("concurrent_counter")
			counter.Add(ctx, 1)
		}()
	}

	wg.Wait()

	value := metrics.GetCounterValue("concurrent_counter")
	if value != 100 {
		t.Fatalf("expected counter value 100, got %d", value)
	}
}

func TestNoopMetrics(t *testing.T) {
	metrics := otel.NewNoopMetrics()
	ctx := context.Background()

	// All operations should not panic
	metrics.Counter("test").Add(ctx, 100)
	metrics.Histogram("test").Record(ctx, 1.5)
	metrics.Gauge("test").Set(ctx, 42.0)
}

func TestNewAttr(t *testing.T) {
	attr := otel.NewAttr("key", "value")

	if attr.Key != "key" {
		t.Fatalf("expected key 'key', got %s", attr.Key)
	}
	if attr.Value != "value" {
		t.Fatalf("expected value 'value', got %v", attr.Value)
	}
}

func TestPredefinedMetrics_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range otel.PredefinedMetrics {
		if seen[m.Name] {
			t.Fatalf("duplicate predefined metric name %q", m.Name)
		}
		seen[m.Name] = true
	}
}
