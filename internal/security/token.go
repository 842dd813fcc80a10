package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clientbook/backend/internal/ids"
)

// Kind discriminates the three token flavors. The kind is embedded in
// the signed claims and must match the operation consuming the token.
type Kind string

const (
	KindAccess  Kind = "access_token"
	KindRefresh Kind = "refresh_token"
	KindEmail   Kind = "email_token"
)

// ErrInvalidToken covers bad signature, expiry and kind mismatch. The
// causes are deliberately not distinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenService issues and validates access, refresh and
// email-confirmation tokens, all signed with one process-wide secret.
type TokenService struct {
	secret []byte
	ttls   map[Kind]time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL, emailTTL time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttls: map[Kind]time.Duration{
			KindAccess:  accessTTL,
			KindRefresh: refreshTTL,
			KindEmail:   emailTTL,
		},
	}
}

// Issue signs a token of the given kind for the subject email using
// the configured TTL for that kind.
func (s *TokenService) Issue(kind Kind, email string) (string, error) {
	return s.IssueWithTTL(kind, email, s.ttls[kind])
}

func (s *TokenService) IssueWithTTL(kind Kind, email string, ttl time.Duration) (string, error) {
	// The jti makes every issued token distinct. Without it two tokens
	// for the same subject within the same second are byte-identical,
	// and rotating the stored refresh token would be a no-op.
	now := time.Now()
	claims := Claims{
		Scope: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ids.New(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Decode verifies signature and expiry, checks the embedded kind
// against expected and returns the subject email.
func (s *TokenService) Decode(tokenStr string, expected Kind) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Scope != string(expected) {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
