package models

import "time"

// Client is an address-book contact. PhoneNumber is stored normalized,
// see internal/phone.
type Client struct {
	ID             string
	Firstname      string
	Lastname       string
	Email          string
	PhoneNumber    string
	Birthday       time.Time
	AdditionalData string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
