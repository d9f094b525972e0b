package creal

import (
	"context"
	"errors"
)

// Sentinel errors. Wrap with fmt.Errorf("...: %w", err) where a call site
// needs to add context; callers distinguish kinds with errors.Is.
var (
	// ErrPrecisionOverflow guards the safe precision range. It is
	// never recovered locally.
	ErrPrecisionOverflow = errors.New("creal: precision overflow")

	// ErrDivideByZero is raised when Inverse cannot show its operand's
	// magnitude exceeds the configured DivisionLimit.
	ErrDivideByZero = errors.New("creal: division by zero")

	// ErrSyntax is raised by the parser when input does not match the
	// grammar.
	ErrSyntax = errors.New("creal: syntax error")
)

// ArithError reports a domain violation that is neither a precision overflow
// nor a division by zero, for instance a negative Sqrt operand or an Asin
// argument outside [-1, 1].
type ArithError struct {
	Op  string
	Msg string
}

func (e *ArithError) Error() string {
	if e.Op == "" {
		return "creal: " + e.Msg
	}
	return "creal: " + e.Op + ": " + e.Msg
}

// ErrOverflow reports an asin/acos argument outside its domain.
func ErrOverflow(op string) error {
	return &ArithError{Op: op, Msg: "argument magnitude exceeds 1"}
}

// ErrArithmetic reports a generic arithmetic failure (e.g. sqrt of a
// negative operand).
func ErrArithmetic(op, msg string) error {
	return &ArithError{Op: op, Msg: msg}
}

// checkCancel surfaces cooperative cancellation. Every tight iterative loop
// and every Evaluate/Msd entry point calls this so that a cancelled
// evaluation propagates promptly without corrupting any node's cache (caches
// are only written by checkCancel's caller on successful completion).
func checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// IsCancelled reports whether err denotes cooperative cancellation
// (context.Canceled or context.DeadlineExceeded, possibly wrapped).
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
