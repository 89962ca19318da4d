package chain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	// ErrInvalidArgument is matched by *ArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSequence is matched by *SequenceError.
	ErrSequence = errors.New("invalid instruction sequence")

	// ErrInvalidState is matched by *StateError.
	ErrInvalidState = errors.New("invalid query state")
)

// ArgumentError reports an instruction called with a missing or malformed
// argument.
type ArgumentError struct {
	Instruction Instruction

	// Want describes the accepted argument.
	Want string

	// Got is the rejected value, if any.
	Got any
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Got != nil {
		return fmt.Sprintf("%s() must be called with %s (got %T %v)", e.Instruction, e.Want, e.Got, e.Got)
	}
	return fmt.Sprintf("%s() must be called with %s", e.Instruction, e.Want)
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// SequenceError reports an instruction invoked in a position its
// predecessors do not allow.
type SequenceError struct {
	Instruction Instruction

	// Previous is the last logged instruction, empty if the log was empty.
	Previous Instruction

	// Allowed are the method names that may precede Instruction.
	Allowed []string
}

// Error implements the error interface.
func (e *SequenceError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, a := range e.Allowed {
		allowed[i] = a + "()"
	}
	return fmt.Sprintf("%s() must be preceded by %s", e.Instruction, strings.Join(allowed, " or "))
}

// Is reports whether target is ErrSequence.
func (e *SequenceError) Is(target error) bool {
	return target == ErrSequence
}

// StateError reports a terminal invoked without a resource kind it accepts.
type StateError struct {
	// Operation is the terminal, e.g. "list" or "listTransactions".
	Operation string

	// Kind is the selected resource kind, empty when none was selected.
	Kind ResourceKind

	// Valid are the kinds Operation accepts.
	Valid []ResourceKind
}

// Error implements the error interface.
func (e *StateError) Error() string {
	valid := make([]string, len(e.Valid))
	for i, k := range e.Valid {
		valid[i] = string(k)
	}
	got := "none"
	if e.Kind != "" {
		got = string(e.Kind)
	}
	return fmt.Sprintf("%s() must be called in context of one of %s (got %s)",
		e.Operation, strings.Join(valid, ", "), got)
}

// Is reports whether target is ErrInvalidState.
func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}
