package service

import (
	"context"
	"strings"
	"sync"

	"clientbook/backend/internal/models"
	"clientbook/backend/internal/queue"
	"clientbook/backend/internal/repository"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]models.User)}
}

func (s *memUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Email] = user
	return nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) UpdateRefreshToken(_ context.Context, email string, token *string) error {
	return s.mutate(email, func(u *models.User) {
		u.RefreshToken = token
	})
}

func (s *memUserStore) ConfirmEmail(_ context.Context, email string) error {
	return s.mutate(email, func(u *models.User) {
		u.Confirmed = true
	})
}

func (s *memUserStore) UpdatePassword(_ context.Context, email string, hash []byte) error {
	return s.mutate(email, func(u *models.User) {
		u.PasswordHash = hash
	})
}

func (s *memUserStore) UpdateAvatar(_ context.Context, email, avatarURL string) error {
	return s.mutate(email, func(u *models.User) {
		u.Avatar = &avatarURL
	})
}

func (s *memUserStore) mutate(email string, fn func(*models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	fn(&user)
	s.users[email] = user
	return nil
}

type memClientStore struct {
	mu      sync.Mutex
	clients map[string]models.Client
}

func newMemClientStore() *memClientStore {
	return &memClientStore{clients: make(map[string]models.Client)}
}

func (s *memClientStore) List(_ context.Context, limit, offset int) ([]models.Client, error) {
	all, _ := s.All(context.Background())
	if offset >= len(all) {
		return []models.Client{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *memClientStore) All(_ context.Context) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	return out, nil
}

func (s *memClientStore) Search(_ context.Context, term string) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term = strings.ToLower(term)
	out := make([]models.Client, 0)
	for _, c := range s.clients {
		haystack := strings.ToLower(c.Firstname + " " + c.Lastname + " " + c.Email)
		if strings.Contains(haystack, term) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memClientStore) GetByID(_ context.Context, id string) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	client, ok := s.clients[id]
	if !ok {
		return models.Client{}, repository.ErrClientNotFound
	}
	return client, nil
}

func (s *memClientStore) FindByEmail(_ context.Context, email string) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.Email == email {
			return c, nil
		}
	}
	return models.Client{}, repository.ErrClientNotFound
}

func (s *memClientStore) FindByPhone(_ context.Context, phoneNumber string) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.PhoneNumber == phoneNumber {
			return c, nil
		}
	}
	return models.Client{}, repository.ErrClientNotFound
}

func (s *memClientStore) Create(_ context.Context, client models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client.ID] = client
	return nil
}

func (s *memClientStore) Update(_ context.Context, client models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[client.ID]; !ok {
		return repository.ErrClientNotFound
	}
	s.clients[client.ID] = client
	return nil
}

func (s *memClientStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return repository.ErrClientNotFound
	}
	delete(s.clients, id)
	return nil
}

type memEnqueuer struct {
	mu    sync.Mutex
	tasks []queue.Task
}

func (e *memEnqueuer) Enqueue(_ context.Context, task queue.Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, task)
	return nil
}

func (e *memEnqueuer) all() []queue.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]queue.Task(nil), e.tasks...)
}
