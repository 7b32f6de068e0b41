package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/cbu-recon/payscraper/internal/session"
	"github.com/cbu-recon/payscraper/pkg/logger"
)

type Scheduler struct {
	sweeper   session.Sweeper
	interval  time.Duration
	scheduler gocron.Scheduler
}

func New(sweeper session.Sweeper, interval time.Duration) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if interval < time.Second {
		interval = time.Minute
	}

	return &Scheduler{
		sweeper:   sweeper,
		interval:  interval,
		scheduler: s,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.sweepSessions),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	logger.Log.Info().Dur("interval", s.interval).Msg("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		logger.Log.Error().Err(err).Msg("scheduler shutdown error")
	}
}

func (s *Scheduler) sweepSessions() {
	if n := s.sweeper.Sweep(time.Now()); n > 0 {
		logger.Log.Info().Int("removed", n).Msg("expired sessions swept")
	}
}
