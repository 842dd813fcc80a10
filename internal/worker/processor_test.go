package worker

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientbook/backend/internal/queue"
)

type recordingMailer struct {
	confirmations []string
	resets        [][3]string
	digests       [][2]string
}

func (m *recordingMailer) SendConfirmation(_ context.Context, email, username string) error {
	m.confirmations = append(m.confirmations, email+"/"+username)
	return nil
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, email, username, password string) error {
	m.resets = append(m.resets, [3]string{email, username, password})
	return nil
}

func (m *recordingMailer) SendBirthdayDigest(_ context.Context, recipient, body string) error {
	m.digests = append(m.digests, [2]string{recipient, body})
	return nil
}

func message(task queue.Task) redis.XMessage {
	return redis.XMessage{ID: "1-0", Values: task.Values()}
}

func TestProcessorHandle_Dispatch(t *testing.T) {
	t.Parallel()

	mailer := &recordingMailer{}
	processor := NewProcessor(mailer, zerolog.Nop())
	ctx := context.Background()

	err := processor.Handle(ctx, message(queue.Task{
		Type:     queue.TaskConfirmEmail,
		Email:    "alice@example.com",
		Username: "alice",
	}))
	require.NoError(t, err)

	err = processor.Handle(ctx, message(queue.Task{
		Type:     queue.TaskPasswordReset,
		Email:    "bob@example.com",
		Username: "bob",
		Password: "a1b2c3d4",
	}))
	require.NoError(t, err)

	err = processor.Handle(ctx, message(queue.Task{
		Type:  queue.TaskBirthdayDigest,
		Email: "admin@example.com",
		Body:  "2 birthdays this week",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice@example.com/alice"}, mailer.confirmations)
	assert.Equal(t, [][3]string{{"bob@example.com", "bob", "a1b2c3d4"}}, mailer.resets)
	assert.Equal(t, [][2]string{{"admin@example.com", "2 birthdays this week"}}, mailer.digests)
}

func TestProcessorHandle_UnknownTypeAcked(t *testing.T) {
	t.Parallel()

	mailer := &recordingMailer{}
	processor := NewProcessor(mailer, zerolog.Nop())

	err := processor.Handle(context.Background(), message(queue.Task{
		Type:  "something_else",
		Email: "x@example.com",
	}))
	assert.NoError(t, err)
	assert.Empty(t, mailer.confirmations)
}

func TestProcessorHandle_BadPayload(t *testing.T) {
	t.Parallel()

	processor := NewProcessor(&recordingMailer{}, zerolog.Nop())

	err := processor.Handle(context.Background(), redis.XMessage{
		ID:     "1-0",
		Values: map[string]any{"email": "x@example.com"},
	})
	assert.Error(t, err)
}
