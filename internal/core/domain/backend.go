package domain

import (
	"errors"
	"regexp"

	"go.trai.ch/zerr"
)

var backendPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateBackend checks that name can be used as a backend feature and directory suffix.
func ValidateBackend(name string) error {
	if !backendPattern.MatchString(name) {
		return errors.Join(ErrArgumentInvalid, zerr.With(zerr.Wrap(ErrInvalidBackend, ""), "backend", name))
	}
	return nil
}

// BackendCrate returns the crate name of the backend implementation.
func BackendCrate(backend string) string {
	return "odra-" + backend + "-backend"
}
