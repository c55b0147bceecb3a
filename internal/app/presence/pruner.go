package presence

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pruner periodically removes stale presence rows on backends without a
// native TTL. Stop it through its context or Stop.
type Pruner struct {
	service  Service
	interval time.Duration
	logger   *zap.SugaredLogger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewPruner(service Service, interval time.Duration, logger *zap.Logger) *Pruner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Pruner{
		service:  service,
		interval: interval,
		logger:   logger.Sugar(),
		done:     make(chan struct{}),
	}
}

// Start prunes once right away, then on every interval until ctx ends.
func (p *Pruner) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	go p.loop(ctx)
	p.logger.Infow("Presence pruner started", "interval", p.interval.String())
}

// Stop signals the loop to exit and waits for it. A pruner that was never
// started returns immediately.
func (p *Pruner) Stop() {
	if p == nil || p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

func (p *Pruner) loop(ctx context.Context) {
	defer close(p.done)

	p.prune(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *Pruner) prune(ctx context.Context) {
	deleted, err := p.service.Prune(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warnw("Presence prune failed", "error", err)
		}
		return
	}
	if deleted > 0 {
		p.logger.Debugw("Presence prune", "deleted", deleted)
	}
}
