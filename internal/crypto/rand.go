package crypto

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
)

// TokenSize is the number of random bytes backing an API token.
const TokenSize = 32

func RandomBytes(size int) ([]byte, error) {
	data := make([]byte, size)

	read, err := rand.Read(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if read != size {
		return nil, errors.New("unexpected number of read bytes")
	}

	return data, nil
}

// GenerateSecureToken returns a URL-safe, unpadded base64 token usable as a
// bearer credential.
func GenerateSecureToken() (string, error) {
	bytes, err := RandomBytes(TokenSize)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
