package pubkey

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrPointNotOnCurve is returned when coordinates don't satisfy
	// y^2 = x^3 + 7 over the secp256k1 field or exceed the field prime.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrPointIsInfinity is returned when a key would be the point at
	// infinity.
	ErrPointIsInfinity = ErrorKind("ErrPointIsInfinity")

	// ErrInvalidX is returned when an x coordinate has no matching y.
	ErrInvalidX = ErrorKind("ErrInvalidX")

	// ErrInvalidLength is returned when a serialized key is not 33 bytes
	// for the compressed format or 65 bytes for the uncompressed one.
	ErrInvalidLength = ErrorKind("ErrInvalidLength")

	// ErrUnsupportedPrefix is returned when a serialized key starts with
	// a byte other than 0x02, 0x03 or 0x04.
	ErrUnsupportedPrefix = ErrorKind("ErrUnsupportedPrefix")

	// ErrMalformedInput is returned for input that is not valid hex or
	// not a key object.
	ErrMalformedInput = ErrorKind("ErrMalformedInput")

	// ErrInvalidPrivateKey is returned when a private scalar is zero, not
	// below the group order, or not 32 bytes.
	ErrInvalidPrivateKey = ErrorKind("ErrInvalidPrivateKey")

	// ErrTweakOutOfRange is returned when a taproot tweak hash is not
	// below the group order.
	ErrTweakOutOfRange = ErrorKind("ErrTweakOutOfRange")

	// ErrResultIsInfinity is returned when tweaking yields the point at
	// infinity.
	ErrResultIsInfinity = ErrorKind("ErrResultIsInfinity")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to public keys.  It has full support
// for errors.Is and errors.As, so the caller can ascertain the specific
// reason for the error by checking the underlying error.
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
