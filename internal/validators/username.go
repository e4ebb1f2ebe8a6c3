package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+\-]+$`)
	usernameSymbol  = regexp.MustCompile(`^[\p{L}\p{N}_.@+\-]$`)
)

// ErrEmptyUsername is returned for an empty username.
var ErrEmptyUsername = errors.New("username is required")

// InvalidSymbolsError reports the characters of a username that are not allowed.
type InvalidSymbolsError struct {
	Symbols string
}

func (e *InvalidSymbolsError) Error() string {
	return fmt.Sprintf("invalid characters: %s", e.Symbols)
}

// ValidateUsername accepts letters, digits, underscore and ".@+-".
// A rejection lists every offending character in input order.
func ValidateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if usernamePattern.MatchString(username) {
		return nil
	}

	var bad strings.Builder
	for _, r := range username {
		if !usernameSymbol.MatchString(string(r)) {
			bad.WriteRune(r)
		}
	}
	return &InvalidSymbolsError{Symbols: bad.String()}
}
