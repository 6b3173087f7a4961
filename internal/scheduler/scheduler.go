package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// stopGrace bounds how long Stop waits for an in-flight cycle.
const stopGrace = 10 * time.Second

// Scheduler invokes the fetch cycle on a fixed interval. At most one cycle
// runs at a time: a tick that fires while the previous cycle is still in
// flight is skipped, not queued.
type Scheduler struct {
	cron     *cron.Cron
	interval time.Duration
	task     func(context.Context)
	running  atomic.Bool
	ctx      context.Context
	logger   *zap.Logger
}

// NewScheduler creates a Scheduler that calls task every interval.
// ctx is passed through to the task and cancels in-flight work on shutdown.
func NewScheduler(ctx context.Context, interval time.Duration, task func(context.Context), logger *zap.Logger) *Scheduler {
	std := zap.NewStdLog(logger)
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(std)))),
		interval: interval,
		task:     task,
		ctx:      ctx,
		logger:   logger,
	}
}

// Start registers the periodic job and starts ticking.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return fmt.Errorf("register fetch job: %w", err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// runOnce executes the task if no other execution is in flight. The run
// token is a non-blocking CAS so a slow cycle makes later ticks no-ops.
func (s *Scheduler) runOnce() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous fetch cycle still running, skipping tick")
		return
	}
	defer s.running.Store(false)
	s.task(s.ctx)
}

// Stop halts future ticks and waits up to stopGrace for an in-flight cycle
// to finish before abandoning it.
func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
	case <-time.After(stopGrace):
		s.logger.Warn("scheduler stopped with fetch cycle still in flight")
	}
}
