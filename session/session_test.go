package session

import (
	"context"
	"testing"
	"time"

	"github.com/Dsnks-19/Task-management-system/storage"
)

func TestEstablishAndCurrent(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewMemory())

	if _, ok, _ := m.Current(ctx); ok {
		t.Fatal("expected no session before login")
	}
	if err := m.Establish(ctx, "user-1"); err != nil {
		t.Fatalf("establish: %v", err)
	}
	userID, ok, err := m.Current(ctx)
	if err != nil || !ok || userID != "user-1" {
		t.Fatalf("current = %q, %v, %v", userID, ok, err)
	}
}

// The login flow writes a one-hour cookie but the interaction heartbeat
// rewrites it with a one-day lifetime. The divergence is deliberate here;
// this pins it down.
func TestHeartbeatExtendsBeyondLoginTTL(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewMemory())

	if err := m.Establish(ctx, "user-1"); err != nil {
		t.Fatalf("establish: %v", err)
	}
	remaining, ok, err := m.TTL(ctx)
	if err != nil || !ok {
		t.Fatalf("ttl after login: %v, %v", ok, err)
	}
	if remaining > time.Hour || remaining < time.Hour-time.Minute {
		t.Fatalf("expected ~1h cookie after login, got %v", remaining)
	}

	if err := m.Heartbeat(ctx); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	remaining, ok, err = m.TTL(ctx)
	if err != nil || !ok {
		t.Fatalf("ttl after heartbeat: %v, %v", ok, err)
	}
	if remaining > 24*time.Hour || remaining < 24*time.Hour-time.Minute {
		t.Fatalf("expected ~1d cookie after heartbeat, got %v", remaining)
	}
}

func TestHeartbeatWithoutSessionIsNoop(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewMemory())

	if err := m.Heartbeat(ctx); err != nil {
		t.Fatalf("heartbeat without session: %v", err)
	}
	if _, ok, _ := m.Current(ctx); ok {
		t.Fatal("heartbeat must not create a session")
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewMemory())

	if err := m.Establish(ctx, "user-1"); err != nil {
		t.Fatalf("establish: %v", err)
	}
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := m.Current(ctx); ok {
		t.Fatal("expected session gone after clear")
	}
}

func TestExpiredSessionReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := storage.NewMemory().WithClock(func() time.Time { return now })
	m := NewManager(store, WithLoginTTL(time.Hour))

	if err := m.Establish(ctx, "user-1"); err != nil {
		t.Fatalf("establish: %v", err)
	}
	now = now.Add(2 * time.Hour)
	if _, ok, _ := m.Current(ctx); ok {
		t.Fatal("expected expired session to read as absent")
	}
	// An expired cookie also means the heartbeat has nothing to refresh.
	if err := m.Heartbeat(ctx); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	if _, ok, _ := m.Current(ctx); ok {
		t.Fatal("heartbeat must not resurrect an expired session")
	}
}

func TestTTLOverrides(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewMemory(), WithLoginTTL(10*time.Minute), WithHeartbeatTTL(20*time.Minute))

	if err := m.Establish(ctx, "user-1"); err != nil {
		t.Fatalf("establish: %v", err)
	}
	remaining, _, _ := m.TTL(ctx)
	if remaining > 10*time.Minute {
		t.Fatalf("login TTL override ignored, got %v", remaining)
	}
	if err := m.Heartbeat(ctx); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	remaining, _, _ = m.TTL(ctx)
	if remaining <= 10*time.Minute || remaining > 20*time.Minute {
		t.Fatalf("heartbeat TTL override ignored, got %v", remaining)
	}
}
