// Package errors provides sentinel errors and error types for the chess engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrParse indicates malformed square, FEN or PGN text.
	ErrParse = errors.New("parse error")

	// ErrInvalidSquare indicates malformed algebraic square text.
	ErrInvalidSquare = fmt.Errorf("invalid square: %w", ErrParse)

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = fmt.Errorf("invalid FEN string: %w", ErrParse)

	// ErrInvalidPGN indicates malformed PGN text.
	ErrInvalidPGN = fmt.Errorf("invalid PGN: %w", ErrParse)

	// ErrInvalidSAN indicates text that is not a SAN move.
	ErrInvalidSAN = fmt.Errorf("invalid SAN move: %w", ErrParse)

	// ErrIllegalMove indicates a move that is not in the legal move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrAmbiguousMove indicates a SAN move that matches more than one legal move.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrNotationMismatch indicates a check or mate suffix that disagrees
	// with the position reached. It is a warning, not a failure.
	ErrNotationMismatch = errors.New("notation mismatch")

	// ErrGameOver indicates a move attempted after the game has ended.
	ErrGameOver = errors.New("game is over")

	// ErrCorruptState indicates a board that violates engine invariants,
	// such as a missing king.
	ErrCorruptState = errors.New("corrupt board state")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound indicates a saved game that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStopped marks batch work skipped after the worker pool was stopped.
	ErrStopped = errors.New("processing stopped")
)

// MoveError wraps errors with move context: the ply at which the move was
// attempted and the move text. It is returned while replaying PGN movetext.
type MoveError struct {
	Err      error  // The underlying error
	Ply      int    // 1-based ply number (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	if e.Err == nil {
		return context
	}
	if context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", context, e.Err)
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with location context.
// It's used for square, FEN and PGN parsing errors.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The offending input (token, field or whole text)
	Field    string // Named field for structured formats such as FEN
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Line > 0 {
		loc := fmt.Sprintf("line %d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
		parts = append(parts, loc)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Input != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Input))
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	if e.Err == nil {
		return ErrParse
	}
	return e.Err
}

// NotationMismatchError reports a move whose check or mate suffix does not
// match the status of the resulting position. The move itself was accepted.
type NotationMismatchError struct {
	Ply      int
	MoveText string
	Claimed  string // suffix in the source text: "", "+" or "#"
	Actual   string // suffix implied by the position: "", "+" or "#"
}

// Error describes the disagreement.
func (e *NotationMismatchError) Error() string {
	return fmt.Sprintf("ply %d, move %q: claimed %s but position is %s: %v",
		e.Ply, e.MoveText, describeSuffix(e.Claimed), describeSuffix(e.Actual), ErrNotationMismatch)
}

// Unwrap returns ErrNotationMismatch.
func (e *NotationMismatchError) Unwrap() error {
	return ErrNotationMismatch
}

func describeSuffix(s string) string {
	switch s {
	case "+":
		return "check"
	case "#":
		return "checkmate"
	default:
		return "no check"
	}
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's tree matches target.
// It saves callers from importing both this package and the standard one.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
