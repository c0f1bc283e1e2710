package writequeue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestQueue_FIFOPerKey(t *testing.T) {
	q := New(Config{Shards: 4, QueueSize: 64})
	defer q.Stop()

	var mu sync.Mutex
	var order []int

	ctx := context.Background()
	for i := 0; i < 50; i++ {
		i := i
		err := q.Submit(ctx, "studySmarter_decks", JobFunc(func(context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}))
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}
	if err := q.Barrier(ctx, "studySmarter_decks"); err != nil {
		t.Fatalf("Barrier: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 50 {
		t.Fatalf("ran %d jobs, want 50", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order violated at %d: got %d", i, v)
		}
	}
}

func TestQueue_SubmitAfterStop(t *testing.T) {
	q := New(Config{})
	q.Stop()
	err := q.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))
	if !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("want ErrQueueClosed, got %v", err)
	}
}

func TestQueue_ErrorHandlerNoRetry(t *testing.T) {
	errs := make(chan error, 1)
	q := New(Config{
		MaxAttempts:  1,
		ErrorHandler: func(err error) { errs <- err },
	})
	defer q.Stop()

	boom := errors.New("disk full")
	calls := 0
	err := q.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		calls++
		return boom
	}))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case got := <-errs:
		if !errors.Is(got, boom) {
			t.Fatalf("handler got %v, want %v", got, boom)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("error handler not invoked")
	}
	if err := q.Barrier(context.Background(), "k"); err != nil {
		t.Fatalf("Barrier: %v", err)
	}
	if calls != 1 {
		t.Fatalf("job ran %d times, want 1 (no retry)", calls)
	}
}

func TestQueue_RetriesUpToMaxAttempts(t *testing.T) {
	errs := make(chan error, 1)
	q := New(Config{
		MaxAttempts:  3,
		BaseBackoff:  time.Millisecond,
		MaxInterval:  5 * time.Millisecond,
		ErrorHandler: func(err error) { errs <- err },
	})
	defer q.Stop()

	var mu sync.Mutex
	calls := 0
	err := q.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return errors.New("transient")
	}))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case <-errs:
	case <-time.After(2 * time.Second):
		t.Fatalf("error handler not invoked")
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 3 {
		t.Fatalf("job ran %d times, want 3", calls)
	}
}

func TestQueue_StopDrainsPending(t *testing.T) {
	q := New(Config{Shards: 1, QueueSize: 16})

	var mu sync.Mutex
	ran := 0
	for i := 0; i < 10; i++ {
		err := q.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		}))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	q.Stop()

	mu.Lock()
	defer mu.Unlock()
	if ran != 10 {
		t.Fatalf("drained %d jobs, want 10", ran)
	}
}
