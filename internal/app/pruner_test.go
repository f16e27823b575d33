package app

import (
	"testing"
	"time"

	"github.com/yungbote/gymcoach/internal/config"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/session"
)

type fakePrunable struct {
	cutoffs []time.Time
}

func (f *fakePrunable) Prune(cutoff time.Time) int {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 1
}

func TestPrunerUsesTTL(t *testing.T) {
	reg := &fakePrunable{}
	p, err := NewPruner(logger.Nop(), reg, config.SessionConfig{
		TTL:           config.Duration{Duration: time.Hour},
		PruneSchedule: "@every 10m",
	})
	if err != nil {
		t.Fatalf("NewPruner: %v", err)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	p.RunOnce()
	if len(reg.cutoffs) != 1 || !reg.cutoffs[0].Equal(now.Add(-time.Hour)) {
		t.Fatalf("cutoffs=%v", reg.cutoffs)
	}
	if p.cron == nil {
		t.Fatalf("expected a schedule")
	}
}

func TestPrunerDisabledWithoutTTL(t *testing.T) {
	reg := &fakePrunable{}
	p, err := NewPruner(logger.Nop(), reg, config.SessionConfig{PruneSchedule: "@every 10m"})
	if err != nil {
		t.Fatalf("NewPruner: %v", err)
	}
	p.RunOnce()
	p.Start()
	p.Stop()
	if len(reg.cutoffs) != 0 || p.cron != nil {
		t.Fatalf("pruner should be disabled: cutoffs=%v", reg.cutoffs)
	}
}

func TestPrunerRejectsBadSchedule(t *testing.T) {
	_, err := NewPruner(logger.Nop(), &fakePrunable{}, config.SessionConfig{
		TTL:           config.Duration{Duration: time.Hour},
		PruneSchedule: "not a schedule",
	})
	if err == nil {
		t.Fatalf("expected error for bad schedule")
	}
}

func TestPrunerKeepsRecentlyUsedSession(t *testing.T) {
	reg := session.NewRegistry(nil, logger.Nop(), session.Options{})
	active := reg.Create()
	idle := reg.Create()
	created := time.Now().Add(-3 * time.Hour)
	active.Touch(created)
	idle.Touch(created)
	if _, err := reg.Get(active.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}

	p, err := NewPruner(logger.Nop(), reg, config.SessionConfig{
		TTL:           config.Duration{Duration: time.Hour},
		PruneSchedule: "@every 10m",
	})
	if err != nil {
		t.Fatalf("NewPruner: %v", err)
	}
	p.RunOnce()
	if reg.Len() != 1 {
		t.Fatalf("len=%d", reg.Len())
	}
	if _, err := reg.Get(active.ID); err != nil {
		t.Fatalf("active session pruned: %v", err)
	}
}
