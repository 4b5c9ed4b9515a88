package medusa

import (
	"errors"
	"fmt"

	"go.dot.industries/storewire/internal/env"
)

// Required secrets, validated in this order before anything else resolves.
const (
	EnvDatabaseURL  = "DATABASE_URL"
	EnvJWTSecret    = "JWT_SECRET"
	EnvCookieSecret = "COOKIE_SECRET"
)

// RequiredSecrets lists every variable that must be present for the
// application to start.
var RequiredSecrets = []string{EnvDatabaseURL, EnvJWTSecret, EnvCookieSecret}

// ErrMissingRequiredConfig is matched by every MissingConfigError.
var ErrMissingRequiredConfig = errors.New("missing required config")

// MissingConfigError reports a mandatory variable that is absent or empty.
type MissingConfigError struct {
	Name string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing required env: %s", e.Name)
}

// Is lets errors.Is match ErrMissingRequiredConfig.
func (e *MissingConfigError) Is(target error) bool {
	return target == ErrMissingRequiredConfig
}

// RequireSecret returns the value of name or a *MissingConfigError when it is
// absent or empty. No default is ever substituted.
func RequireSecret(s env.Snapshot, name string) (string, error) {
	v, ok := s.Lookup(name)
	if !ok || v == "" {
		return "", &MissingConfigError{Name: name}
	}
	return v, nil
}

// requiredSecrets holds the validated mandatory values.
type requiredSecrets struct {
	databaseURL  string
	jwtSecret    string
	cookieSecret string
}

// requireAll validates every required secret, stopping at the first missing
// one.
func requireAll(s env.Snapshot) (requiredSecrets, error) {
	values := make([]string, len(RequiredSecrets))
	for i, name := range RequiredSecrets {
		v, err := RequireSecret(s, name)
		if err != nil {
			return requiredSecrets{}, err
		}
		values[i] = v
	}

	return requiredSecrets{
		databaseURL:  values[0],
		jwtSecret:    values[1],
		cookieSecret: values[2],
	}, nil
}
