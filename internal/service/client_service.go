package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"clientbook/backend/internal/ids"
	"clientbook/backend/internal/models"
	"clientbook/backend/internal/phone"
	"clientbook/backend/internal/repository"
)

// ClientService manages the address book: CRUD, substring search and
// the upcoming-birthday window. Phone numbers are normalized before
// any lookup or write.
type ClientService struct {
	clients ClientStore
	log     zerolog.Logger
}

func NewClientService(clients ClientStore, log zerolog.Logger) *ClientService {
	return &ClientService{
		clients: clients,
		log:     log,
	}
}

type ClientInput struct {
	Firstname      string
	Lastname       string
	Email          string
	PhoneNumber    string
	Birthday       time.Time
	AdditionalData string
}

func (s *ClientService) List(ctx context.Context, limit, offset int) ([]models.Client, error) {
	return s.clients.List(ctx, limit, offset)
}

func (s *ClientService) Get(ctx context.Context, id string) (models.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return models.Client{}, ErrClientNotFound
		}
		return models.Client{}, err
	}
	return client, nil
}

func (s *ClientService) Search(ctx context.Context, term string) ([]models.Client, error) {
	return s.clients.Search(ctx, term)
}

func (s *ClientService) Create(ctx context.Context, input ClientInput) (models.Client, error) {
	normalized, err := phone.Normalize(input.PhoneNumber)
	if err != nil {
		return models.Client{}, err
	}

	if _, err := s.clients.FindByEmail(ctx, input.Email); err == nil {
		return models.Client{}, ErrClientEmailExists
	} else if !errors.Is(err, repository.ErrClientNotFound) {
		return models.Client{}, err
	}
	if _, err := s.clients.FindByPhone(ctx, normalized); err == nil {
		return models.Client{}, ErrClientPhoneExists
	} else if !errors.Is(err, repository.ErrClientNotFound) {
		return models.Client{}, err
	}

	client := models.Client{
		ID:             ids.New(),
		Firstname:      input.Firstname,
		Lastname:       input.Lastname,
		Email:          input.Email,
		PhoneNumber:    normalized,
		Birthday:       input.Birthday,
		AdditionalData: input.AdditionalData,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id string, input ClientInput) (models.Client, error) {
	normalized, err := phone.Normalize(input.PhoneNumber)
	if err != nil {
		return models.Client{}, err
	}

	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return models.Client{}, ErrClientNotFound
		}
		return models.Client{}, err
	}

	client.Firstname = input.Firstname
	client.Lastname = input.Lastname
	client.Email = input.Email
	client.PhoneNumber = normalized
	client.Birthday = input.Birthday
	client.AdditionalData = input.AdditionalData

	if err := s.clients.Update(ctx, client); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) (models.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return models.Client{}, ErrClientNotFound
		}
		return models.Client{}, err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// UpcomingBirthdays returns clients whose next birthday falls within
// [today, today+days], projecting each birthday onto the current year
// and wrapping into the next year when it already passed.
func (s *ClientService) UpcomingBirthdays(ctx context.Context, days int) ([]models.Client, error) {
	clients, err := s.clients.All(ctx)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(time.Now())
	end := today.AddDate(0, 0, days)

	upcoming := make([]models.Client, 0)
	for _, client := range clients {
		next := nextBirthday(client.Birthday, today)
		if !next.Before(today) && !next.After(end) {
			upcoming = append(upcoming, client)
		}
	}
	return upcoming, nil
}

func nextBirthday(birthday, today time.Time) time.Time {
	next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = next.AddDate(1, 0, 0)
	}
	return next
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
