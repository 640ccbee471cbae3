package usage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreDefaultsOnFirstGet(t *testing.T) {
	svc := NewService()
	u, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Plan != defaultPlan || u.Limit != defaultLimit || u.Used != 0 {
		t.Fatalf("unexpected defaults: %+v", u)
	}
	if !u.ResetsAt.After(time.Now().UTC()) {
		t.Fatalf("resetsAt should be in the future: %v", u.ResetsAt)
	}
}

func TestConsumeEnforcesLimit(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	for i := 0; i < defaultLimit; i++ {
		if _, err := svc.Consume(ctx, "user-1", 1); err != nil {
			t.Fatalf("Consume %d: %v", i+1, err)
		}
	}
	if _, err := svc.Consume(ctx, "user-1", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}

	ok, u, err := svc.CanConsume(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("CanConsume: %v", err)
	}
	if ok {
		t.Fatalf("expected CanConsume false at limit, usage %+v", u)
	}
}

func TestResetClearsUsage(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", 3); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	u, err := svc.Reset(ctx, "user-1")
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("expected used=0 after reset, got %d", u.Used)
	}
}

func TestEnsurePeriodRollsExpiredWindow(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	mem := svc.store.(*memoryStore)
	mem.mu.Lock()
	mem.data["user-1"] = Usage{
		Plan:     defaultPlan,
		Limit:    defaultLimit,
		Used:     defaultLimit,
		ResetsAt: time.Now().UTC().Add(-time.Hour),
	}
	mem.mu.Unlock()

	u, err := svc.EnsurePeriod(ctx, "user-1")
	if err != nil {
		t.Fatalf("EnsurePeriod: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("expected expired window to reset used, got %d", u.Used)
	}
	if !u.ResetsAt.After(time.Now().UTC()) {
		t.Fatalf("expected new window, got %v", u.ResetsAt)
	}
}

func TestCanConsumeZeroAlwaysAllowed(t *testing.T) {
	svc := NewService()
	ok, _, err := svc.CanConsume(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("CanConsume: %v", err)
	}
	if !ok {
		t.Fatal("zero consumption should always be allowed")
	}
}
