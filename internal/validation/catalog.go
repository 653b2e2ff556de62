// Package validation checks user supplied values before they reach services.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,80}$`)

// ValidateUsername checks the configured acting username.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return errors.New("username must be 3-80 characters of letters, digits and underscores")
	}
	if strings.HasPrefix(username, "_") || strings.HasSuffix(username, "_") {
		return errors.New("username cannot start or end with an underscore")
	}
	return nil
}
