package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"clientbook/backend/internal/ids"
	"clientbook/backend/internal/models"
	"clientbook/backend/internal/queue"
	"clientbook/backend/internal/repository"
	"clientbook/backend/internal/security"
)

// AuthService orchestrates the account lifecycle: signup with email
// confirmation, login, token refresh, logout and password management.
// Exactly one refresh token is stored per account; issuing a new one
// invalidates all prior ones.
type AuthService struct {
	users  UserStore
	tokens *security.TokenService
	mail   TaskEnqueuer
	log    zerolog.Logger
}

func NewAuthService(users UserStore, tokens *security.TokenService, mail TaskEnqueuer, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		mail:   mail,
		log:    log,
	}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (models.User, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrAccountExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	avatar := gravatarURL(email)
	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		Email:        email,
		PasswordHash: passwordHash,
		Avatar:       &avatar,
		Role:         models.RoleUser,
		Confirmed:    false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.enqueueMail(ctx, queue.Task{
		Type:     queue.TaskConfirmEmail,
		Email:    user.Email,
		Username: user.Username,
	})

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidEmail
		}
		return TokenPair{}, err
	}
	if !user.Confirmed {
		return TokenPair{}, ErrEmailNotConfirmed
	}
	if !security.VerifyPassword(password, user.PasswordHash) {
		return TokenPair{}, ErrInvalidPassword
	}

	return s.issuePair(ctx, email)
}

// Refresh exchanges a refresh token for a new access+refresh pair. A
// presented token that does not equal the stored one clears the stored
// token, forcing a re-login.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	email, err := s.tokens.Decode(refreshToken, security.KindRefresh)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		if err := s.users.UpdateRefreshToken(ctx, email, nil); err != nil {
			s.log.Error().Err(err).Str("email", email).Msg("clear refresh token failed")
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}

	return s.issuePair(ctx, email)
}

// Logout clears the stored refresh token. Repeating it is a no-op.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	email, err := s.tokens.Decode(accessToken, security.KindAccess)
	if err != nil {
		return security.ErrInvalidToken
	}

	if err := s.users.UpdateRefreshToken(ctx, email, nil); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return security.ErrInvalidToken
		}
		return err
	}
	return nil
}

func (s *AuthService) ConfirmEmail(ctx context.Context, emailToken string) (string, error) {
	email, err := s.tokens.Decode(emailToken, security.KindEmail)
	if err != nil {
		return "", ErrVerification
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrVerification
		}
		return "", err
	}

	if user.Confirmed {
		return "Your email is already confirmed", nil
	}
	if err := s.users.ConfirmEmail(ctx, email); err != nil {
		return "", err
	}
	return "Email confirmed", nil
}

func (s *AuthService) RequestEmailConfirmation(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrVerification
		}
		return "", err
	}

	if user.Confirmed {
		return "Your email is already confirmed", nil
	}

	s.enqueueMail(ctx, queue.Task{
		Type:     queue.TaskConfirmEmail,
		Email:    user.Email,
		Username: user.Username,
	})
	return "Check your email for confirmation.", nil
}

// RequestPasswordReset replaces the account password with a random
// one-time secret and hands the plaintext to the mail worker. The
// plaintext is never persisted.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrVerification
		}
		return "", err
	}

	password, err := security.GeneratePassword()
	if err != nil {
		return "", err
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, email, hash); err != nil {
		return "", err
	}

	s.enqueueMail(ctx, queue.Task{
		Type:     queue.TaskPasswordReset,
		Email:    user.Email,
		Username: user.Username,
		Password: password,
	})
	return "You new password send to your email.", nil
}

func (s *AuthService) ChangePassword(ctx context.Context, email, current, next string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrVerification
		}
		return "", err
	}

	if !security.VerifyPassword(current, user.PasswordHash) {
		return "", ErrInvalidPassword
	}

	hash, err := security.HashPassword(next)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, email, hash); err != nil {
		return "", err
	}
	return "Your password has been successfully changed.", nil
}

func (s *AuthService) issuePair(ctx context.Context, email string) (TokenPair, error) {
	accessToken, err := s.tokens.Issue(security.KindAccess, email)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := s.tokens.Issue(security.KindRefresh, email)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.users.UpdateRefreshToken(ctx, email, &refreshToken); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// enqueueMail is best-effort: a full stream or unreachable redis must
// not fail the triggering request.
func (s *AuthService) enqueueMail(ctx context.Context, task queue.Task) {
	if s.mail == nil {
		return
	}
	if err := s.mail.Enqueue(ctx, task); err != nil {
		s.log.Warn().Err(err).Str("type", task.Type).Str("email", task.Email).Msg("enqueue mail failed")
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func gravatarURL(email string) string {
	sum := md5.Sum([]byte(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon", hex.EncodeToString(sum[:]))
}
