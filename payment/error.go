package payment

// ErrorKind identifies a kind of error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidThreshold is returned when a multisig threshold is below
	// one or above the number of keys.
	ErrInvalidThreshold = ErrorKind("ErrInvalidThreshold")

	// ErrTooManyKeys is returned when a multisig script would carry more
	// keys than OP_CHECKMULTISIG accepts.
	ErrTooManyKeys = ErrorKind("ErrTooManyKeys")

	// ErrEmptyScript is returned when an output script is empty or nil.
	ErrEmptyScript = ErrorKind("ErrEmptyScript")

	// ErrInvalidScript is returned when the script builder rejects a
	// script.
	ErrInvalidScript = ErrorKind("ErrInvalidScript")

	// ErrUnsupportedProgram is returned for witness programs other than
	// v0 key/script hashes and v1 taproot keys.
	ErrUnsupportedProgram = ErrorKind("ErrUnsupportedProgram")

	// ErrInvalidKey is returned when a key can not be used by the
	// requested script template.
	ErrInvalidKey = ErrorKind("ErrInvalidKey")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a script template error.
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

func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
