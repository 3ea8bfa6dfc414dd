package syncs

import (
	"context"
	"errors"
	"testing"
)

func TestSemaphore(t *testing.T) {
	sem := NewSemaphore(0)
	if cap(sem) != 1 {
		t.Fatalf("got %v", cap(sem))
	}
	ctx := context.Background()
	if err := sem.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := sem.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}

	sem.Release()
	if err := sem.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
}
