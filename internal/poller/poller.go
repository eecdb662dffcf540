package poller

import (
	"context"
	"log/slog"
	"time"

	"bookforge/pkg/domain"
)

// StatusFunc fetches one generation-progress snapshot.
type StatusFunc func(ctx context.Context, bookID string) (domain.BookStatus, error)

// Update is the per-tick view the status screen renders.
type Update struct {
	Status           domain.BookStatus
	CurrentChapter   int
	EstimatedMinutes int
}

// Hooks receive poll results. OnComplete fires exactly once, after the
// completion grace period; OnFailed fires once with no navigation attached.
type Hooks struct {
	OnUpdate   func(Update)
	OnComplete func(domain.BookStatus)
	OnFailed   func(domain.BookStatus)
}

// Poller drives the generating -> {complete|failed} state machine for one
// book: query on a fixed interval, update the screen, and hand off to the
// download screen once the terminal complete state is reached.
type Poller struct {
	getStatus       StatusFunc
	interval        time.Duration
	completionGrace time.Duration
	totalChapters   int
}

// Config tunes the poll cadence. Zero values take the status screen's
// defaults: 3s interval, 1.5s completion grace.
type Config struct {
	Interval        time.Duration
	CompletionGrace time.Duration
	TotalChapters   int
}

// New builds a poller over the given status fetcher.
func New(getStatus StatusFunc, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 3 * time.Second
	}
	if cfg.CompletionGrace < 0 {
		cfg.CompletionGrace = 0
	} else if cfg.CompletionGrace == 0 {
		cfg.CompletionGrace = 1500 * time.Millisecond
	}
	if cfg.TotalChapters <= 0 {
		cfg.TotalChapters = 10
	}
	return &Poller{
		getStatus:       getStatus,
		interval:        cfg.Interval,
		completionGrace: cfg.CompletionGrace,
		totalChapters:   cfg.TotalChapters,
	}
}

// Run polls until a terminal state is reached or ctx is cancelled. An
// immediate check happens before the first interval elapses. A failed poll
// request is logged and skipped; the loop keeps its cadence with no backoff.
func (p *Poller) Run(ctx context.Context, bookID string, hooks Hooks) error {
	if done, err := p.check(ctx, bookID, hooks); done || err != nil {
		return err
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if done, err := p.check(ctx, bookID, hooks); done || err != nil {
				return err
			}
		}
	}
}

func (p *Poller) check(ctx context.Context, bookID string, hooks Hooks) (bool, error) {
	status, err := p.getStatus(ctx, bookID)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		slog.Warn("failed to check status", "book_id", bookID, "err", err)
		return false, nil
	}

	if hooks.OnUpdate != nil {
		hooks.OnUpdate(Update{
			Status:           status,
			CurrentChapter:   p.currentChapter(status),
			EstimatedMinutes: estimatedMinutes(status.Progress),
		})
	}

	switch status.Status {
	case domain.StatusComplete:
		// Let the completion animation play out before navigating away.
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(p.completionGrace):
		}
		if hooks.OnComplete != nil {
			hooks.OnComplete(status)
		}
		return true, nil
	case domain.StatusFailed:
		if hooks.OnFailed != nil {
			hooks.OnFailed(status)
		}
		return true, nil
	}
	return false, nil
}

// currentChapter prefers the server value and otherwise derives one from
// overall progress.
func (p *Poller) currentChapter(status domain.BookStatus) int {
	if status.CurrentChapter > 0 {
		return status.CurrentChapter
	}
	total := status.TotalChapters
	if total <= 0 {
		total = p.totalChapters
	}
	chapter := (status.Progress*total + 99) / 100
	if chapter < 1 {
		chapter = 1
	}
	return chapter
}

// estimatedMinutes is a display-only approximation, floored at one minute.
func estimatedMinutes(progress int) int {
	remaining := (100 - progress + 19) / 20
	if remaining < 1 {
		remaining = 1
	}
	return remaining
}
