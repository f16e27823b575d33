package app

import (
	"strings"
	"time"

	"github.com/robfig/cron"

	"github.com/yungbote/gymcoach/internal/config"
	"github.com/yungbote/gymcoach/internal/platform/logger"
)

// Prunable is satisfied by *session.Registry.
type Prunable interface {
	Prune(cutoff time.Time) int
}

// Pruner drops sessions idle longer than the configured TTL on a cron schedule.
// A zero TTL or empty schedule disables it.
type Pruner struct {
	log  *logger.Logger
	reg  Prunable
	ttl  time.Duration
	cron *cron.Cron
	now  func() time.Time
}

func NewPruner(log *logger.Logger, reg Prunable, cfg config.SessionConfig) (*Pruner, error) {
	p := &Pruner{
		log: log.With("component", "SessionPruner"),
		reg: reg,
		ttl: cfg.TTL.Duration,
		now: time.Now,
	}
	spec := strings.TrimSpace(cfg.PruneSchedule)
	if p.ttl <= 0 || spec == "" {
		return p, nil
	}
	p.cron = cron.New()
	if err := p.cron.AddFunc(spec, p.RunOnce); err != nil {
		return nil, err
	}
	return p, nil
}

// RunOnce prunes sessions last used before now minus the TTL.
func (p *Pruner) RunOnce() {
	if p.ttl <= 0 {
		return
	}
	n := p.reg.Prune(p.now().Add(-p.ttl))
	if n > 0 {
		p.log.Info("pruned sessions", "count", n, "ttl", p.ttl.String())
	}
}

func (p *Pruner) Start() {
	if p == nil || p.cron == nil {
		return
	}
	p.cron.Start()
}

func (p *Pruner) Stop() {
	if p == nil || p.cron == nil {
		return
	}
	p.cron.Stop()
}
