package lookup

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/protektor-crm/orderdesk/internal/api"
)

func TestDebounceCollapsesKeystrokes(t *testing.T) {
	var calls atomic.Int64
	var lastPhone atomic.Value

	d := New(20*time.Millisecond, func(_ context.Context, phone string) (*api.ClientRecord, error) {
		calls.Add(1)
		lastPhone.Store(phone)
		return &api.ClientRecord{ID: "c1", Phone: phone}, nil
	}, func(*api.ClientRecord) {})

	ctx := context.Background()
	d.Input(ctx, "+7")
	d.Input(ctx, "+77")
	d.Input(ctx, "+770")
	d.Input(ctx, "+7701")

	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 lookup, got %d", got)
	}
	if got := lastPhone.Load(); got != "+7701" {
		t.Errorf("expected last keystroke's value, got %v", got)
	}
}

func TestBlankInputCancelsPending(t *testing.T) {
	var calls atomic.Int64
	d := New(20*time.Millisecond, func(context.Context, string) (*api.ClientRecord, error) {
		calls.Add(1)
		return nil, nil
	}, func(*api.ClientRecord) {})

	ctx := context.Background()
	d.Input(ctx, "+7701")
	d.Input(ctx, "")

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("expected no lookups after field cleared, got %d", got)
	}
}

func TestStaleResponseNotApplied(t *testing.T) {
	var mu sync.Mutex
	applied := []string{}

	d := New(time.Hour, func(_ context.Context, phone string) (*api.ClientRecord, error) {
		return &api.ClientRecord{ID: phone}, nil
	}, func(rec *api.ClientRecord) {
		mu.Lock()
		applied = append(applied, rec.ID)
		mu.Unlock()
	})

	ctx := context.Background()

	// Two requests issued; the older one resolves after the newer one.
	d.seq = 2
	d.resolve(ctx, "new", 2)
	d.resolve(ctx, "old", 1)

	mu.Lock()
	defer mu.Unlock()
	if len(applied) != 1 || applied[0] != "new" {
		t.Errorf("expected only the newest response applied, got %v", applied)
	}
}

func TestSupersededRequestNotApplied(t *testing.T) {
	var mu sync.Mutex
	applied := []string{}

	d := New(time.Hour, func(_ context.Context, phone string) (*api.ClientRecord, error) {
		return &api.ClientRecord{ID: phone}, nil
	}, func(rec *api.ClientRecord) {
		mu.Lock()
		applied = append(applied, rec.ID)
		mu.Unlock()
	})

	ctx := context.Background()

	// A newer request is in flight (seq=2); the older response must lose
	// even though nothing has been applied yet.
	d.seq = 2
	d.resolve(ctx, "old", 1)
	d.resolve(ctx, "new", 2)

	mu.Lock()
	defer mu.Unlock()
	if len(applied) != 1 || applied[0] != "new" {
		t.Errorf("expected old response discarded, got %v", applied)
	}
}

func TestNotFoundIsSilent(t *testing.T) {
	var applies atomic.Int64
	d := New(time.Millisecond, func(context.Context, string) (*api.ClientRecord, error) {
		return nil, nil
	}, func(*api.ClientRecord) {
		applies.Add(1)
	})

	d.Flush(context.Background())
	d.Input(context.Background(), "+7701")
	d.Flush(context.Background())

	if got := applies.Load(); got != 0 {
		t.Errorf("not-found must not apply anything, got %d applies", got)
	}
}

func TestFlushIssuesImmediately(t *testing.T) {
	var calls atomic.Int64
	d := New(time.Hour, func(context.Context, string) (*api.ClientRecord, error) {
		calls.Add(1)
		return nil, nil
	}, func(*api.ClientRecord) {})

	ctx := context.Background()
	d.Input(ctx, "+7701")
	d.Flush(ctx)

	if got := calls.Load(); got != 1 {
		t.Errorf("expected flush to issue the pending lookup, got %d calls", got)
	}
}
