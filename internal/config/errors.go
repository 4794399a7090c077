package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDefaultAdminPassword is returned when the placeholder admin password is
// still configured in a production environment.
var ErrDefaultAdminPassword = errors.New("default admin password detected in production, set ADMIN_PASSWORD to a secure value")

// MissingEnvError reports which required environment variables are unset.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Vars, ", "))
}
