package worker

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"clientbook/backend/internal/queue"
)

// Mailer delivers the three outbound mail kinds.
type Mailer interface {
	SendConfirmation(ctx context.Context, email, username string) error
	SendPasswordReset(ctx context.Context, email, username, password string) error
	SendBirthdayDigest(ctx context.Context, recipient, body string) error
}

// Processor dispatches stream messages to the mailer.
type Processor struct {
	mailer Mailer
	logger zerolog.Logger
}

func NewProcessor(mailer Mailer, logger zerolog.Logger) *Processor {
	return &Processor{
		mailer: mailer,
		logger: logger,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	task, err := queue.TaskFromValues(msg.Values)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	switch task.Type {
	case queue.TaskConfirmEmail:
		return p.mailer.SendConfirmation(ctx, task.Email, task.Username)
	case queue.TaskPasswordReset:
		return p.mailer.SendPasswordReset(ctx, task.Email, task.Username, task.Password)
	case queue.TaskBirthdayDigest:
		return p.mailer.SendBirthdayDigest(ctx, task.Email, task.Body)
	default:
		p.logger.Warn().Str("type", task.Type).Msg("unknown task type")
		return nil
	}
}
