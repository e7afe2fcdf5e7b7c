package game

import (
	"errors"
	"fmt"
)

var (
	ErrTerminal         = errors.New("state is terminal")
	ErrActionOutOfRange = errors.New("action index out of range")
)

// InvariantViolation is the panic value raised when the engine or its caller
// breaks an internal contract, such as drawing from an empty deck.
type InvariantViolation string

func (e InvariantViolation) Error() string { return "invariant violation: " + string(e) }

func violate(format string, args ...any) {
	panic(InvariantViolation(fmt.Sprintf(format, args...)))
}

// UnsupportedError reports content the engine does not model: an unknown
// card, effect, species or enemy action. It degrades the session that hit it
// instead of aborting the process.
type UnsupportedError struct {
	Kind string // "card", "effect", "species", "enemy action"
	Name string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s %q", e.Kind, e.Name)
}

func unsupported(kind, name string) error {
	return &UnsupportedError{Kind: kind, Name: name}
}
