package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientbook/backend/internal/queue"
	"clientbook/backend/internal/security"
)

func newAuthFixture() (*AuthService, *memUserStore, *memEnqueuer, *security.TokenService) {
	users := newMemUserStore()
	tokens := security.NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour, 24*time.Hour)
	mail := &memEnqueuer{}
	svc := NewAuthService(users, tokens, mail, zerolog.Nop())
	return svc, users, mail, tokens
}

func signupConfirmed(t *testing.T, svc *AuthService, users *memUserStore, email, password string) {
	t.Helper()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "tester", Email: email, Password: password})
	require.NoError(t, err)
	require.NoError(t, users.ConfirmEmail(ctx, email))
}

func TestSignup(t *testing.T) {
	t.Parallel()

	svc, users, mail, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{Username: "alice", Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email, "email is lowercased")
	assert.False(t, user.Confirmed)
	assert.NotEmpty(t, user.ID)
	require.NotNil(t, user.Avatar)
	assert.Contains(t, *user.Avatar, "gravatar.com/avatar/")
	assert.NotContains(t, string(user.PasswordHash), "secret1")

	stored, err := users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)

	tasks := mail.all()
	require.Len(t, tasks, 1)
	assert.Equal(t, queue.TaskConfirmEmail, tasks[0].Type)
	assert.Equal(t, "alice@example.com", tasks[0].Email)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Username: "alice2", Email: "ALICE@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()
	signupConfirmed(t, svc, users, "bob@example.com", "secret1")

	pair, err := svc.Login(ctx, "bob@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	stored, err := users.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, pair.RefreshToken, *stored.RefreshToken)
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Signup(ctx, SignupInput{Username: "carol", Email: "carol@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "carol@example.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailNotConfirmed)

	require.NoError(t, users.ConfirmEmail(ctx, "carol@example.com"))

	_, err = svc.Login(ctx, "carol@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestRefresh_RotatesStoredToken(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()
	signupConfirmed(t, svc, users, "dave@example.com", "secret1")

	first, err := svc.Login(ctx, "dave@example.com", "secret1")
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken,
		"rotation must issue a distinct refresh token")

	stored, err := users.FindByEmail(ctx, "dave@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, second.RefreshToken, *stored.RefreshToken)

	// The rotated-out token is dead even immediately after rotation.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_MismatchClearsStoredToken(t *testing.T) {
	t.Parallel()

	svc, users, _, tokens := newAuthFixture()
	ctx := context.Background()
	signupConfirmed(t, svc, users, "erin@example.com", "secret1")

	_, err := svc.Login(ctx, "erin@example.com", "secret1")
	require.NoError(t, err)

	// Valid signature, but not the token on record.
	stray, err := tokens.IssueWithTTL(security.KindRefresh, "erin@example.com", time.Hour)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, stray)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	stored, err := users.FindByEmail(ctx, "erin@example.com")
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken, "stored token cleared after mismatch")
}

func TestRefresh_RejectsOtherKinds(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()
	signupConfirmed(t, svc, users, "frank@example.com", "secret1")

	pair, err := svc.Login(ctx, "frank@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()
	signupConfirmed(t, svc, users, "grace@example.com", "secret1")

	pair, err := svc.Login(ctx, "grace@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.AccessToken))

	stored, err := users.FindByEmail(ctx, "grace@example.com")
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken, "refresh token unusable after logout")

	assert.NoError(t, svc.Logout(ctx, pair.AccessToken), "logout is idempotent")
}

func TestLogout_RejectsNonAccessToken(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()
	signupConfirmed(t, svc, users, "heidi@example.com", "secret1")

	pair, err := svc.Login(ctx, "heidi@example.com", "secret1")
	require.NoError(t, err)

	err = svc.Logout(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestConfirmEmail(t *testing.T) {
	t.Parallel()

	svc, users, _, tokens := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "ivan", Email: "ivan@example.com", Password: "secret1"})
	require.NoError(t, err)

	token, err := tokens.Issue(security.KindEmail, "ivan@example.com")
	require.NoError(t, err)

	msg, err := svc.ConfirmEmail(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Email confirmed", msg)

	stored, err := users.FindByEmail(ctx, "ivan@example.com")
	require.NoError(t, err)
	assert.True(t, stored.Confirmed)

	msg, err = svc.ConfirmEmail(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Your email is already confirmed", msg)
}

func TestConfirmEmail_Failures(t *testing.T) {
	t.Parallel()

	svc, _, _, tokens := newAuthFixture()
	ctx := context.Background()

	_, err := svc.ConfirmEmail(ctx, "garbage")
	assert.ErrorIs(t, err, ErrVerification)

	token, err := tokens.Issue(security.KindEmail, "ghost@example.com")
	require.NoError(t, err)
	_, err = svc.ConfirmEmail(ctx, token)
	assert.ErrorIs(t, err, ErrVerification)

	// Access tokens must not confirm emails.
	access, err := tokens.Issue(security.KindAccess, "ivan@example.com")
	require.NoError(t, err)
	_, err = svc.ConfirmEmail(ctx, access)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestRequestEmailConfirmation(t *testing.T) {
	t.Parallel()

	svc, users, mail, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.RequestEmailConfirmation(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrVerification)

	_, err = svc.Signup(ctx, SignupInput{Username: "judy", Email: "judy@example.com", Password: "secret1"})
	require.NoError(t, err)

	msg, err := svc.RequestEmailConfirmation(ctx, "judy@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Check your email for confirmation.", msg)
	assert.Len(t, mail.all(), 2, "signup mail plus the re-request")

	require.NoError(t, users.ConfirmEmail(ctx, "judy@example.com"))

	msg, err = svc.RequestEmailConfirmation(ctx, "judy@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Your email is already confirmed", msg)
	assert.Len(t, mail.all(), 2, "no mail for already confirmed accounts")
}

func TestRequestPasswordReset(t *testing.T) {
	t.Parallel()

	svc, users, mail, _ := newAuthFixture()
	ctx := context.Background()
	signupConfirmed(t, svc, users, "kate@example.com", "secret1")

	before, err := users.FindByEmail(ctx, "kate@example.com")
	require.NoError(t, err)

	msg, err := svc.RequestPasswordReset(ctx, "kate@example.com")
	require.NoError(t, err)
	assert.Equal(t, "You new password send to your email.", msg)

	after, err := users.FindByEmail(ctx, "kate@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

	tasks := mail.all()
	last := tasks[len(tasks)-1]
	assert.Equal(t, queue.TaskPasswordReset, last.Type)
	require.NotEmpty(t, last.Password)
	assert.True(t, security.VerifyPassword(last.Password, after.PasswordHash),
		"mailed one-time password matches the stored hash")

	_, err = svc.Login(ctx, "kate@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidPassword, "old password no longer valid")

	_, err = svc.Login(ctx, "kate@example.com", last.Password)
	assert.NoError(t, err)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _, mail, _ := newAuthFixture()

	_, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrVerification)
	assert.Empty(t, mail.all())
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()
	signupConfirmed(t, svc, users, "leo@example.com", "secret1")

	msg, err := svc.ChangePassword(ctx, "leo@example.com", "secret1", "secret2")
	require.NoError(t, err)
	assert.Equal(t, "Your password has been successfully changed.", msg)

	_, err = svc.Login(ctx, "leo@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	_, err = svc.Login(ctx, "leo@example.com", "secret2")
	assert.NoError(t, err)
}

func TestChangePassword_WrongCurrentLeavesHashIntact(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()
	signupConfirmed(t, svc, users, "mallory@example.com", "secret1")

	before, err := users.FindByEmail(ctx, "mallory@example.com")
	require.NoError(t, err)

	_, err = svc.ChangePassword(ctx, "mallory@example.com", "wrong", "secret2")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	after, err := users.FindByEmail(ctx, "mallory@example.com")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	_, err = svc.Login(ctx, "mallory@example.com", "secret1")
	assert.NoError(t, err)
}
