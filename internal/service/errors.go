package service

import "errors"

// Sentinel errors carry the exact messages the HTTP layer returns.
// Login deliberately distinguishes "Invalid email" from "Invalid
// password" while token-based flows answer a generic "Verification
// error"; the asymmetry is preserved for client compatibility.
var (
	ErrAccountExists       = errors.New("Account already exists")
	ErrInvalidEmail        = errors.New("Invalid email")
	ErrEmailNotConfirmed   = errors.New("Email not confirmed")
	ErrInvalidPassword     = errors.New("Invalid password")
	ErrInvalidRefreshToken = errors.New("Invalid refresh token")
	ErrVerification        = errors.New("Verification error")

	ErrClientNotFound    = errors.New("Client not found")
	ErrClientEmailExists = errors.New("Client with this email already exist")
	ErrClientPhoneExists = errors.New("Client with this phone already exist")
)
