package voicemail

import (
	"context"
	"time"

	"voicemail-console/internal/metrics"
)

// StartRefresh reloads the list every interval until Stop is called or
// ctx ends. Reloads run regardless of selection. Calling it while a loop
// is already running does nothing.
func (s *Store) StartRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done
	go s.refreshLoop(ctx, interval, done)
	s.log.Debug("voicemail refresh started", "interval", interval.String())
}

// Stop halts the refresh loop and waits for it to exit.
func (s *Store) Stop() {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel, s.done = nil, nil
}

func (s *Store) refreshLoop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			metrics.RefreshRun()
			s.LoadAll(ctx)
		}
	}
}
