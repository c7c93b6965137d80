package auth

import (
	"encoding/base64"
	"fmt"
)

// Basic authenticates with an API username and secret.
type Basic struct {
	username string
	secret   string
}

// NewBasic creates a Basic strategy. Both username and secret are required.
func NewBasic(username, secret string) (*Basic, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: missing username", ErrConfiguration)
	}
	if secret == "" {
		return nil, fmt.Errorf("%w: missing secret", ErrConfiguration)
	}

	return &Basic{
		username: username,
		secret:   secret,
	}, nil
}

// Name returns "Basic"
func (b *Basic) Name() string {
	return "Basic"
}

// Authorization returns "Basic " followed by base64(username:secret)
func (b *Basic) Authorization() string {
	credentials := base64.StdEncoding.EncodeToString([]byte(b.username + ":" + b.secret))
	return "Basic " + credentials
}

// Username returns the configured API username
func (b *Basic) Username() string {
	return b.username
}
