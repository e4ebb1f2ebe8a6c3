package services

import (
	"errors"
	"sort"
	"strings"
)

// Not found errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
)

// Access errors.
var (
	ErrNotAuthenticated   = errors.New("authentication credentials were not provided")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
)

// Conflict errors. Each is reported to the client as is.
var (
	ErrAlreadyFavorited   = errors.New("recipe is already in favorites")
	ErrNotFavorited       = errors.New("recipe is not in favorites")
	ErrAlreadyInCart      = errors.New("recipe is already in the shopping cart")
	ErrNotInCart          = errors.New("recipe is not in the shopping cart")
	ErrSelfSubscription   = errors.New("you cannot subscribe to yourself")
	ErrSelfUnsubscription = errors.New("you cannot unsubscribe from yourself")
	ErrAlreadySubscribed  = errors.New("you are already subscribed to this user")
	ErrNotSubscribed      = errors.New("you are not subscribed to this user")
)

// IsConflict reports whether err is one of the conflict errors.
func IsConflict(err error) bool {
	for _, target := range []error{
		ErrAlreadyFavorited, ErrNotFavorited,
		ErrAlreadyInCart, ErrNotInCart,
		ErrSelfSubscription, ErrSelfUnsubscription,
		ErrAlreadySubscribed, ErrNotSubscribed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is one of the not found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRecipeNotFound) ||
		errors.Is(err, ErrTagNotFound) ||
		errors.Is(err, ErrIngredientNotFound)
}

// ValidationError maps request fields to what is wrong with them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add records msg for field unless the field already has a message.
func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// errOrNil returns e when it holds at least one field.
func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func fieldError(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
