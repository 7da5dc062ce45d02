// Package scheduler ends elections whose scheduled close time has passed.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"github.com/abrezinsky/evote/internal/logger"
)

// DefaultSpec checks for due elections twice a minute
const DefaultSpec = "@every 30s"

// Closer ends every election that is due for closing
type Closer interface {
	CloseDue(ctx context.Context) (int, error)
}

// Scheduler runs the close job on a cron schedule
type Scheduler struct {
	log    logger.Logger
	closer Closer
	spec   string
	cron   *cron.Cron

	mu      sync.Mutex
	running bool
	entry   cron.EntryID
	jobCtx  atomic.Pointer[jobContext]
}

// jobContext carries the context of the latest Start to the cron job
type jobContext struct {
	ctx context.Context
}

// New creates a Scheduler. An empty spec uses DefaultSpec.
func New(log logger.Logger, closer Closer, spec string) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	return &Scheduler{
		log:    log,
		closer: closer,
		spec:   spec,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{log}),
			cron.SkipIfStillRunning(cronLogger{log}),
		)),
	}
}

// Start registers the close job and starts the cron loop. Elections that
// became due while the server was down are closed right away.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	s.jobCtx.Store(&jobContext{ctx: ctx})
	if s.entry == 0 {
		id, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(s.jobCtx.Load().ctx) })
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", s.spec, err)
		}
		s.entry = id
	}

	s.RunOnce(ctx)
	s.cron.Start()
	s.running = true
	s.log.Info("Close scheduler started", "spec", s.spec)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.log.Info("Close scheduler stopped")
}

// RunOnce closes due elections and returns how many were ended
func (s *Scheduler) RunOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	closed, err := s.closer.CloseDue(ctx)
	if err != nil {
		s.log.Error("Scheduled close failed", "error", err)
		return closed
	}
	if closed > 0 {
		s.log.Info("Scheduled elections closed", "count", closed)
	}
	return closed
}

// cronLogger adapts logger.Logger to cron.Logger
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
