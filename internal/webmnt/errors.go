package webmnt

import (
	"errors"
	"fmt"
)

// Kind categorizes a failed remote operation. The set is closed: every error
// returned by Client is an *Error with one of these kinds.
type Kind int

const (
	// KindTransport covers network and IO failures, timeouts and unexpected
	// non-2xx statuses.
	KindTransport Kind = iota
	// KindParse means the server answered but the body could not be decoded.
	KindParse
	// KindAuth means the server explicitly rejected the credentials or token.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindAuth:
		return "auth"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinel errors for errors.Is checks against a failure kind.
var (
	ErrTransport = &Error{Kind: KindTransport, Message: "transport failure"}
	ErrParse     = &Error{Kind: KindParse, Message: "parse failure"}
	ErrAuth      = &Error{Kind: KindAuth, Message: "authentication failure"}
)

// Error is a typed failure of a remote operation.
type Error struct {
	Kind Kind
	// Op is the operation that failed: auth, list, delete or msg.
	Op string
	// Status is the HTTP status code, 0 when no response was received.
	Status int
	// Message is the server-provided message when there is one.
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String() + " failure"
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrAuth) works for
// every auth failure regardless of operation or message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf reports the failure kind of err. ok is false when err is not an *Error.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func transportError(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Message: "request failed", Err: err}
}

func parseError(op string, err error) *Error {
	return &Error{Kind: KindParse, Op: op, Message: "malformed response", Err: err}
}
