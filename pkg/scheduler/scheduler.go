// Package scheduler wraps gocron behind a tick channel, so consumers can
// select on schedule fires next to context cancellation.
package scheduler

import "github.com/go-co-op/gocron/v2"

type Scheduler struct {
	cron gocron.Scheduler

	// Tick fires once per crontab match.
	Tick chan struct{}
}

func New(crontab string) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		cron: cron,
		Tick: make(chan struct{}),
	}

	if _, err := cron.NewJob(
		gocron.CronJob(crontab, false),
		gocron.NewTask(func() {
			s.Tick <- struct{}{}
		}),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}
