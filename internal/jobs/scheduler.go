package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"clientbook/backend/internal/config"
	"clientbook/backend/internal/queue"
	"clientbook/backend/internal/service"
)

// Scheduler enqueues the daily upcoming-birthday digest for the mail
// worker. Nothing runs when no recipient is configured.
type Scheduler struct {
	cron    *cron.Cron
	clients *service.ClientService
	mail    service.TaskEnqueuer
	cfg     config.DigestConfig
	log     zerolog.Logger
}

func NewScheduler(clients *service.ClientService, mail service.TaskEnqueuer, cfg config.DigestConfig, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:    c,
		clients: clients,
		mail:    mail,
		cfg:     cfg,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if s.cfg.Recipient == "" {
		return nil
	}

	if _, err := s.cron.AddFunc("0 0 8 * * *", s.enqueueBirthdayDigest); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for a running job to finish, up to 5 seconds.
func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) enqueueBirthdayDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	upcoming, err := s.clients.UpcomingBirthdays(ctx, s.cfg.Days)
	if err != nil {
		s.log.Error().Err(err).Msg("birthday digest lookup failed")
		return
	}
	if len(upcoming) == 0 {
		return
	}

	lines := make([]string, 0, len(upcoming))
	for _, client := range upcoming {
		lines = append(lines, fmt.Sprintf("%s %s: %s", client.Firstname, client.Lastname, client.Birthday.Format("2006-01-02")))
	}

	err = s.mail.Enqueue(ctx, queue.Task{
		Type:  queue.TaskBirthdayDigest,
		Email: s.cfg.Recipient,
		Body:  strings.Join(lines, "\n"),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("enqueue birthday digest failed")
	}
}
