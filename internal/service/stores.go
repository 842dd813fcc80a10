package service

import (
	"context"

	"clientbook/backend/internal/models"
	"clientbook/backend/internal/queue"
)

// UserStore is the persisted account directory. The pgx implementation
// lives in internal/repository; tests use in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	UpdateRefreshToken(ctx context.Context, email string, token *string) error
	ConfirmEmail(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email string, hash []byte) error
	UpdateAvatar(ctx context.Context, email string, avatarURL string) error
}

type ClientStore interface {
	List(ctx context.Context, limit, offset int) ([]models.Client, error)
	All(ctx context.Context) ([]models.Client, error)
	Search(ctx context.Context, term string) ([]models.Client, error)
	GetByID(ctx context.Context, id string) (models.Client, error)
	FindByEmail(ctx context.Context, email string) (models.Client, error)
	FindByPhone(ctx context.Context, phoneNumber string) (models.Client, error)
	Create(ctx context.Context, client models.Client) error
	Update(ctx context.Context, client models.Client) error
	Delete(ctx context.Context, id string) error
}

// TaskEnqueuer hands mail intents to the background worker.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task queue.Task) error
}
