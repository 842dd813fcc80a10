// Package phone normalizes contact phone numbers to the +380XXXXXXXXX
// form accepted by the address book.
package phone

import (
	"errors"
	"strings"
)

var ErrInvalidFormat = errors.New("Invalid phone number format")

var stripper = strings.NewReplacer("(", "", ")", "", "-", "", " ", "")

// Normalize strips formatting characters and rewrites known local
// shapes to the international form:
//
//	380501112233 -> +380501112233
//	0501112233   -> +380501112233
//	80501112233  -> +380501112233
//
// Any other shape is rejected.
func Normalize(raw string) (string, error) {
	s := stripper.Replace(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "+")

	if s == "" || !isDigits(s) {
		return "", ErrInvalidFormat
	}

	switch {
	case len(s) == 12:
		return "+" + s, nil
	case len(s) == 10 && strings.HasPrefix(s, "0"):
		return "+38" + s, nil
	case len(s) == 11 && strings.HasPrefix(s, "8"):
		return "+3" + s, nil
	default:
		return "", ErrInvalidFormat
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
