package snapshot

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Snapshotter is the engine-side half: produce the serialized state.
type Snapshotter interface {
	Snapshot() ([]byte, error)
}

// Scheduler writes periodic snapshots on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	engine Snapshotter
	store  Store
	log    *logrus.Logger
}

func NewScheduler(engine Snapshotter, store Store, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		engine: engine,
		store:  store,
		log:    log,
	}
}

// Start registers the snapshot job. The spec expression follows cron syntax,
// e.g. "@every 5m".
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.Run(context.Background()); err != nil {
			s.log.WithError(err).Error("scheduled snapshot failed")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.WithField("schedule", spec).Info("snapshot scheduler started")
	return nil
}

// Run takes one snapshot immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	started := time.Now()
	data, err := s.engine.Snapshot()
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, data); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"bytes":   len(data),
		"took_ms": time.Since(started).Milliseconds(),
	}).Info("snapshot saved")
	return nil
}

// Stop halts the schedule, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
