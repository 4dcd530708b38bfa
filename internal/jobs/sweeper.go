// Package jobs runs the background maintenance work: a periodic sweep that
// deletes expired sessions so the table does not accumulate dead rows
// between lazy deletions.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/lborres/tasuku/services"
)

const taskTypeSweep = "sessions:sweep"

// Sweeper schedules and handles the periodic session sweep.
type Sweeper struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	sessions  *services.SessionManager
	logger    *slog.Logger
	schedule  string
}

// NewSweeper wires an asynq server and scheduler against the given Redis
// address. The schedule is an asynq spec such as "@every 1h".
func NewSweeper(redisAddr, schedule string, sessions *services.SessionManager, logger *slog.Logger) (*Sweeper, error) {
	if redisAddr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	opt := asynq.RedisClientOpt{Addr: redisAddr}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 1,
	})
	scheduler := asynq.NewScheduler(opt, nil)

	sweeper := &Sweeper{
		server:    server,
		scheduler: scheduler,
		mux:       asynq.NewServeMux(),
		sessions:  sessions,
		logger:    logger,
		schedule:  schedule,
	}
	sweeper.mux.HandleFunc(taskTypeSweep, sweeper.handleSweep)
	return sweeper, nil
}

// Start launches the worker and the scheduler in the background.
func (s *Sweeper) Start() error {
	if _, err := s.scheduler.Register(s.schedule, asynq.NewTask(taskTypeSweep, nil)); err != nil {
		return fmt.Errorf("failed to register sweep schedule: %w", err)
	}

	go func() {
		if err := s.server.Run(s.mux); err != nil && err != asynq.ErrServerClosed {
			s.logger.Error("sweep worker stopped", "error", err)
		}
	}()
	go func() {
		if err := s.scheduler.Run(); err != nil {
			s.logger.Error("sweep scheduler stopped", "error", err)
		}
	}()
	return nil
}

// Shutdown stops the scheduler and drains the worker.
func (s *Sweeper) Shutdown() {
	s.scheduler.Shutdown()
	s.server.Shutdown()
}

func (s *Sweeper) handleSweep(ctx context.Context, task *asynq.Task) error {
	count, err := s.sessions.SweepExpired()
	if err != nil {
		return fmt.Errorf("session sweep failed: %w", err)
	}
	if count > 0 {
		s.logger.Info("swept expired sessions", "count", count)
	}
	return nil
}
