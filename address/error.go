package address

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrMalformedInput is returned for input that is not an address
	// string, buffer or object, such as an object with a non-hex hash.
	ErrMalformedInput = ErrorKind("ErrMalformedInput")

	// ErrUnrecognizedFormat is returned when a string is neither a bech32
	// address of a registered network nor a base58check address with a
	// registered version byte.
	ErrUnrecognizedFormat = ErrorKind("ErrUnrecognizedFormat")

	// ErrInvalidChecksum is returned when a base58check, bech32 or bech32m
	// checksum does not verify.
	ErrInvalidChecksum = ErrorKind("ErrInvalidChecksum")

	// ErrInvalidLength is returned when a hash does not have the size its
	// address type requires.
	ErrInvalidLength = ErrorKind("ErrInvalidLength")

	// ErrUnsupportedWitnessVersion is returned for witness versions other
	// than 0 and 1.
	ErrUnsupportedWitnessVersion = ErrorKind("ErrUnsupportedWitnessVersion")

	// ErrWrongChecksumAlgorithmForVersion is returned when a version 0
	// program carries a bech32m checksum or a version 1 program a bech32
	// one.
	ErrWrongChecksumAlgorithmForVersion = ErrorKind("ErrWrongChecksumAlgorithmForVersion")

	// ErrProgramLengthInvalid is returned when a witness program size does
	// not match its version.
	ErrProgramLengthInvalid = ErrorKind("ErrProgramLengthInvalid")

	// ErrNetworkMismatch is returned when an address belongs to another
	// network than the expected one.
	ErrNetworkMismatch = ErrorKind("ErrNetworkMismatch")

	// ErrTypeMismatch is returned when an address has another type than
	// the expected one.
	ErrTypeMismatch = ErrorKind("ErrTypeMismatch")

	// ErrUncompressedKeyNotAllowed is returned when a witness address is
	// requested for an uncompressed public key.
	ErrUncompressedKeyNotAllowed = ErrorKind("ErrUncompressedKeyNotAllowed")

	// ErrInvalidThreshold is returned when a multisig threshold is below
	// one or exceeds the number of keys.
	ErrInvalidThreshold = ErrorKind("ErrInvalidThreshold")

	// ErrUnsupportedType is returned for an unknown address type or a type
	// that cannot be derived from the given input.
	ErrUnsupportedType = ErrorKind("ErrUnsupportedType")

	// ErrUnknownNetwork is returned when a network name is not registered.
	ErrUnknownNetwork = ErrorKind("ErrUnknownNetwork")
)

// Messages callers match on.
const (
	msgNetworkMismatch     = "Address has mismatched network type."
	msgTypeMismatch        = "Address has mismatched type."
	msgUncompressedWitness = "Witness addresses must use compressed public keys."
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an address validation error.  It has full support for
// errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
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
