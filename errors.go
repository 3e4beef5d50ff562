// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "github.com/pkg/errors"

// Kind classifies the error conditions a Manager can raise, mirroring the
// taxonomy CUDD exposes through Cudd_ReadErrorCode: callers that need to
// branch on failure mode (retry after a resize vs. give up) inspect Kind
// instead of parsing Error strings.
type Kind int

const (
	// NoError means the manager has no outstanding error.
	NoError Kind = iota
	// MemoryOut means an allocation failed and could not be recovered by GC
	// or a resize.
	MemoryOut
	// TooManyNodes means an operation guarded by a node-count Limit exceeded
	// its budget.
	TooManyNodes
	// MaxMemExceeded means the manager's configured memory cap was hit.
	MaxMemExceeded
	// TimeoutExpired means a deadline registered with SetTimeout elapsed
	// during a recursive operation.
	TimeoutExpired
	// Termination means a user-registered termination callback requested an
	// abort.
	Termination
	// InvalidArg means a caller passed a malformed argument (out-of-range
	// variable, mismatched slice lengths, and the like).
	InvalidArg
	// InternalError means an invariant of the manager itself was violated;
	// this should never happen outside of a bug in this package.
	InternalError
)

func (k Kind) String() string {
	switch k {
	case NoError:
		return "no error"
	case MemoryOut:
		return "memory out"
	case TooManyNodes:
		return "too many nodes"
	case MaxMemExceeded:
		return "max memory exceeded"
	case TimeoutExpired:
		return "timeout expired"
	case Termination:
		return "terminated"
	case InvalidArg:
		return "invalid argument"
	case InternalError:
		return "internal error"
	default:
		return "unknown error"
	}
}

// managerError is the concrete error type stored on a Manager. Only the first
// error raised during a chain of operations sticks; later frames append
// context instead of overwriting the original cause, matching the "first
// error wins" discipline inherited from the cache/GC machinery this is
// grounded on.
type managerError struct {
	kind Kind
	err  error
}

func (e *managerError) Error() string { return e.err.Error() }
func (e *managerError) Unwrap() error { return e.err }

// Error returns the error status of the manager, or an empty string if there
// is none.
func (m *Manager) Error() string {
	if m.err == nil {
		return ""
	}
	return m.err.Error()
}

// Errored reports whether the manager has an outstanding error.
func (m *Manager) Errored() bool {
	return m.err != nil
}

// ErrorKind returns the Kind of the manager's outstanding error, or NoError
// if there is none.
func (m *Manager) ErrorKind() Kind {
	if m.err == nil {
		return NoError
	}
	return m.err.kind
}

// ClearError resets the manager's error state, allowing it to be used again
// after a recoverable failure such as TooManyNodes.
func (m *Manager) ClearError() {
	m.err = nil
}

func (m *Manager) seterror(kind Kind, format string, a ...interface{}) Node {
	wrapped := errors.Errorf(format, a...)
	if m.err != nil {
		wrapped = errors.Wrap(m.err.err, wrapped.Error())
		kind = m.err.kind
	}
	m.err = &managerError{kind: kind, err: wrapped}
	if m.log != nil {
		m.log.Debugw("manager error", "kind", kind.String(), "error", wrapped.Error())
	}
	return NodeNil
}
