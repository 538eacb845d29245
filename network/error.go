package network

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrDuplicateNetwork is returned when a network being registered
	// shares its name, alias, bech32 prefix, address prefix byte or magic
	// with an already registered network.
	ErrDuplicateNetwork = ErrorKind("ErrDuplicateNetwork")

	// ErrInvalidParams is returned when network parameters are incomplete
	// or self-contradictory.
	ErrInvalidParams = ErrorKind("ErrInvalidParams")

	// ErrUnknownNetwork is returned when a named network is not
	// registered.
	ErrUnknownNetwork = ErrorKind("ErrUnknownNetwork")

	// ErrMalformedConfig is returned when a network definition document
	// can't be parsed.
	ErrMalformedConfig = ErrorKind("ErrMalformedConfig")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to network parameters.  It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
