package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer and the favorites rollback can
// react without string matching.
type Kind int

const (
	Unknown Kind = iota
	// Validation covers bad or missing user input; recoverable by re-input.
	Validation
	// PermissionDenied is a remote store refusing the operation for this user.
	PermissionDenied
	// Transient is any other remote read/write failure worth retrying.
	Transient
	// Payment means the processor or wallet rejected the charge.
	Payment
	// QuoteUndefined means a price quote cannot be derived from the input.
	QuoteUndefined
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case PermissionDenied:
		return "permission_denied"
	case Transient:
		return "transient"
	case Payment:
		return "payment"
	case QuoteUndefined:
		return "quote_undefined"
	default:
		return "unknown"
	}
}

type classified struct {
	kind Kind
	err  error
}

func (c *classified) Error() string { return c.err.Error() }

func (c *classified) Unwrap() error { return c.err }

// New builds a classified error from a message.
func New(kind Kind, msg string) error {
	return &classified{kind: kind, err: errors.New(msg)}
}

// Newf builds a classified error from a format string.
func Newf(kind Kind, format string, args ...any) error {
	return &classified{kind: kind, err: fmt.Errorf(format, args...)}
}

// Wrap attaches a kind to an existing error, preserving the chain.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &classified{kind: kind, err: err}
}

// KindOf walks the chain and returns the first classification found.
func KindOf(err error) Kind {
	for err != nil {
		var c *classified
		if errors.As(err, &c) {
			return c.kind
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
