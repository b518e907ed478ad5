package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUsernameTaken = errors.New("username already taken")
	ErrUpstream      = errors.New("archive API request failed")
)

// AlreadyImportedError is returned when a mod with the same archive file
// id was imported before. ModID points at the existing row.
type AlreadyImportedError struct {
	ModID uint
}

func (e *AlreadyImportedError) Error() string {
	return fmt.Sprintf("mod already imported as id %d", e.ModID)
}

// AlreadyTrackedError is returned when a (user, mod) record already
// exists. RecordID points at the existing row.
type AlreadyTrackedError struct {
	RecordID uint
}

func (e *AlreadyTrackedError) Error() string {
	return fmt.Sprintf("record already exists as id %d", e.RecordID)
}
