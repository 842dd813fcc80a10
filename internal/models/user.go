package models

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	Avatar       *string
	RefreshToken *string
	Role         Role
	Confirmed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
