package utils

import (
	"github.com/google/uuid"
)

// GenerateRememberToken returns an opaque token for the remember-me
// cookie. The token carries no credential material; it is only a lookup
// key against the users table.
func GenerateRememberToken() string {
	return uuid.NewString()
}
