package auth

import (
	"fmt"
	"strings"
)

// Strategy produces the value of the Authorization header sent with every
// Cloud Agents API request. Implementations must be pure: calling
// Authorization twice on the same strategy yields the same string.
type Strategy interface {
	// Name identifies the scheme, e.g. "Basic" or "Bearer".
	Name() string

	// Authorization returns the complete header value including the scheme.
	Authorization() string
}

// Kinds accepted by FromConfig
const (
	KindBasic  = "basic"
	KindBearer = "bearer"
)

// FromConfig builds a strategy from configuration values.
func FromConfig(kind, username, secret, token string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindBasic:
		return NewBasic(username, secret)
	case KindBearer:
		return NewBearer(token)
	case "":
		return nil, fmt.Errorf("%w: auth strategy is required", ErrConfiguration)
	default:
		return nil, fmt.Errorf("%w: unknown auth strategy %q (must be 'basic' or 'bearer')", ErrConfiguration, kind)
	}
}
