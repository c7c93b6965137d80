package auth

import "errors"

// ErrConfiguration indicates missing or invalid credentials, or a client used
// without a bound strategy. It is never retryable.
var ErrConfiguration = errors.New("invalid configuration")

// IsConfigurationError reports whether err is, or wraps, ErrConfiguration.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
