package models

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidRecord is wrapped by every validation failure.
var ErrInvalidRecord = errors.New("invalid record")

// ValidateUsers checks a full replacement user collection against the
// binding tags on User; usernames must be unique.
func ValidateUsers(users []User) error {
	return validateCollection(users, "unique=Username,dive")
}

// ValidateMenuItems checks a full replacement menu against the binding tags
// on MenuItem; ids must be unique.
func ValidateMenuItems(items []MenuItem) error {
	return validateCollection(items, "unique=ID,dive")
}

// validateCollection runs gin's shared validator engine so slice rules and
// struct tags use the same "binding" tag name as request binding.
func validateCollection(collection interface{}, tag string) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("%w: validator engine unavailable", ErrInvalidRecord)
	}
	if err := v.Var(collection, tag); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}
