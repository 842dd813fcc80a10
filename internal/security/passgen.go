package security

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLength = 8
	letters        = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits         = "0123456789"
	alphanumeric   = letters + digits
)

// GeneratePassword returns a random 8-character one-time password
// containing at least one letter and one digit.
func GeneratePassword() (string, error) {
	buf := make([]byte, 0, passwordLength)

	c, err := randomChar(letters)
	if err != nil {
		return "", err
	}
	buf = append(buf, c)

	c, err = randomChar(digits)
	if err != nil {
		return "", err
	}
	buf = append(buf, c)

	for len(buf) < passwordLength {
		c, err = randomChar(alphanumeric)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	if err := shuffle(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, err
	}
	return alphabet[n.Int64()], nil
}

func shuffle(buf []byte) error {
	for i := len(buf) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		j := n.Int64()
		buf[i], buf[j] = buf[j], buf[i]
	}
	return nil
}
