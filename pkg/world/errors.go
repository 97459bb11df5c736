package world

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSuchExit is returned when a direction is not an exit of the current location.
	ErrNoSuchExit = errors.New("no such exit")

	// ErrItemNotFound is returned when an item name matches nothing in the searched containers.
	ErrItemNotFound = errors.New("item not found")
)

// ConfigurationError lists every integrity problem found in a world definition.
// It is fatal: a world that fails validation is never played.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Problems) == 1 {
		return "world configuration invalid: " + e.Problems[0]
	}
	return fmt.Sprintf("world configuration invalid: %d problems:\n  - %s",
		len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

func (e *ConfigurationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}
