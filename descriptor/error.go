package descriptor

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As.
type ErrorKind string

const (
	// ErrMalformedDescriptor is returned for text that does not follow the
	// descriptor grammar.
	ErrMalformedDescriptor = ErrorKind("ErrMalformedDescriptor")

	// ErrInvalidChecksum is returned when the #checksum suffix does not
	// match the descriptor.
	ErrInvalidChecksum = ErrorKind("ErrInvalidChecksum")

	// ErrUnsupportedExpression is returned for a script expression that is
	// unknown or not allowed where it appears.
	ErrUnsupportedExpression = ErrorKind("ErrUnsupportedExpression")

	// ErrInvalidKey is returned for a key expression that is neither a
	// valid public key nor a private key of the descriptor network.
	ErrInvalidKey = ErrorKind("ErrInvalidKey")

	// ErrUnsupportedKey is returned for extended keys, which need HD
	// derivation.
	ErrUnsupportedKey = ErrorKind("ErrUnsupportedKey")

	// ErrInvalidKeyOrigin is returned for a malformed [fingerprint/path]
	// prefix.
	ErrInvalidKeyOrigin = ErrorKind("ErrInvalidKeyOrigin")

	// ErrNoAddress is returned when the described output script has no
	// address form.
	ErrNoAddress = ErrorKind("ErrNoAddress")
)

func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to output descriptors.
type Error struct {
	Err         error
	Description string
}

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
