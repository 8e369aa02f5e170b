package pipeline

import (
	"context"
	"errors"
	"testing"
)

func TestMapCollect(t *testing.T) {
	src := FromSlice([]int{1, 2, 3})
	doubled := Map(src, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})

	got, err := Collect(context.Background(), doubled)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	want := []int{2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestFilter(t *testing.T) {
	src := FromSlice([]int{1, 2, 3, 4})
	evens := Filter(src, func(n int) bool { return n%2 == 0 })

	got, err := Collect(context.Background(), evens)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("unexpected result %v", got)
	}
}

func TestTapSideEffect(t *testing.T) {
	var seen []string
	src := FromSlice([]string{"a", "b"})
	tapped := Tap(src, func(_ context.Context, s string) error {
		seen = append(seen, s)
		return nil
	})

	if _, err := Collect(context.Background(), tapped); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("tap saw %d values, expected 2", len(seen))
	}
}

func TestFromChannelEndsOnClose(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	close(ch)

	got, err := Collect(context.Background(), FromChannel(ch))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 values, got %d", len(got))
	}
}

func TestFromChannelHonorsContext(t *testing.T) {
	ch := make(chan int) // never written, never closed
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, FromChannel(ch))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDrainStopsOnSinkError(t *testing.T) {
	boom := errors.New("sink failed")
	src := FromSlice([]int{1, 2, 3})
	err := Drain(src, func(_ context.Context, n int) error {
		if n == 2 {
			return boom
		}
		return nil
	}).Run(context.Background())

	if !errors.Is(err, boom) {
		t.Errorf("expected sink error, got %v", err)
	}
}
