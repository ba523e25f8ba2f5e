package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/proxy"
)

type testService struct{}

func (testService) Greet(name string) string { return "hello " + name }

func (testService) Explode() (string, error) {
	return "", errors.New("kaboom")
}

func newAuditedProxy(t *testing.T, store Store) *proxy.Instance {
	t.Helper()
	cfg := proxy.NewConfig()
	if err := cfg.SetTarget(&testService{}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddInterceptor(NewRecorder(store)); err != nil {
		t.Fatal(err)
	}
	cfg.Freeze()
	p, err := proxy.NewFactory().GetProxy(cfg)
	if err != nil {
		t.Fatalf("GetProxy() error = %v", err)
	}
	return p
}

func TestRecorder(t *testing.T) {
	store := NewMemoryStore()
	p := newAuditedProxy(t, store)
	ctx := context.Background()

	out, err := p.Call("Greet", "world")
	if err != nil {
		t.Fatalf("Call(Greet) error = %v", err)
	}
	if out[0] != "hello world" {
		t.Errorf("Call(Greet, world) = %v, want hello world", out[0])
	}
	if _, err := p.Call("Explode"); err == nil {
		t.Fatal("Call(Explode) error = nil, want kaboom")
	}

	records, err := store.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	t.Run("success record", func(t *testing.T) {
		got, err := store.Query(ctx, Filter{Method: "Greet"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("len(Query(Greet)) = %d, want 1", len(got))
		}
		r := got[0]
		if r.Outcome != "success" {
			t.Errorf("Outcome = %q, want success", r.Outcome)
		}
		if r.ArgCount != 1 {
			t.Errorf("ArgCount = %d, want 1", r.ArgCount)
		}
		if r.ID == "" {
			t.Error("ID is empty, want a UUID")
		}
		if r.Duration <= 0 {
			t.Errorf("Duration = %v, want > 0", r.Duration)
		}
	})

	t.Run("error record keeps the error text", func(t *testing.T) {
		got, err := store.Query(ctx, Filter{Method: "Explode"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("len(Query(Explode)) = %d, want 1", len(got))
		}
		if got[0].Outcome != "error" || got[0].Error != "kaboom" {
			t.Errorf("record = {%s %q}, want {error kaboom}", got[0].Outcome, got[0].Error)
		}
	})
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Save(context.Context, *Record) error {
	return errors.New("store unavailable")
}

func TestRecorderStoreFailureIsTransparent(t *testing.T) {
	p := newAuditedProxy(t, &failingStore{})

	out, err := p.Call("Greet", "world")
	if err != nil {
		t.Fatalf("Call(Greet) with failing store error = %v, want nil", err)
	}
	if out[0] != "hello world" {
		t.Errorf("Call(Greet, world) = %v, want hello world", out[0])
	}
}

func TestPruner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	old := sampleRecord("old", "Greet", "success", now.AddDate(0, 0, -40))
	fresh := sampleRecord("fresh", "Greet", "success", now.AddDate(0, 0, -5))
	for _, r := range []*Record{old, fresh} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	pruner := NewPruner(store, 30)
	pruner.now = func() time.Time { return now }

	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("Prune() = %d, want 1", deleted)
	}

	remaining, err := store.Query(ctx, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 || remaining[0].ID != "fresh" {
		t.Errorf("remaining records = %v, want only fresh", remaining)
	}

	t.Run("disabled retention is a no-op", func(t *testing.T) {
		p := NewPruner(store, 0)
		deleted, err := p.Prune(ctx)
		if err != nil {
			t.Fatalf("Prune() error = %v", err)
		}
		if deleted != 0 {
			t.Errorf("Prune() with 0 days = %d, want 0", deleted)
		}
	})
}

func TestSchedulerLifecycle(t *testing.T) {
	store := NewMemoryStore()

	t.Run("empty schedule does not start", func(t *testing.T) {
		sched := NewScheduler(store, retentionCfg(0, ""))
		if err := sched.Start(context.Background()); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if sched.IsRunning() {
			t.Error("IsRunning() = true with no schedule")
		}
	})

	t.Run("invalid schedule rejected", func(t *testing.T) {
		sched := NewScheduler(store, retentionCfg(7, "not a cron"))
		if err := sched.Start(context.Background()); err == nil {
			t.Error("Start(invalid schedule) error = nil, want error")
		}
	})

	t.Run("start and stop", func(t *testing.T) {
		sched := NewScheduler(store, retentionCfg(7, "0 3 * * *"))
		ctx, cancel := context.WithCancel(context.Background())
		if err := sched.Start(ctx); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if !sched.IsRunning() {
			t.Error("IsRunning() = false after Start")
		}
		cancel()
		deadline := time.After(2 * time.Second)
		for sched.IsRunning() {
			select {
			case <-deadline:
				t.Fatal("scheduler still running after context cancellation")
			case <-time.After(10 * time.Millisecond):
			}
		}
	})
}

func retentionCfg(days int, schedule string) *config.RetentionConfig {
	return &config.RetentionConfig{Days: days, Schedule: schedule}
}
