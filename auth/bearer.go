package auth

import "fmt"

// Bearer authenticates with a pre-issued access token.
//
// The token is used verbatim for the lifetime of the strategy. When it is
// rotated, build a new Bearer and bind it with Client.Use so the cached
// header is recomputed.
type Bearer struct {
	token string
}

// NewBearer creates a Bearer strategy. The token is required.
func NewBearer(token string) (*Bearer, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrConfiguration)
	}
	return &Bearer{token: token}, nil
}

// Name returns "Bearer"
func (b *Bearer) Name() string {
	return "Bearer"
}

// Authorization returns "Bearer " followed by the token
func (b *Bearer) Authorization() string {
	return "Bearer " + b.token
}
