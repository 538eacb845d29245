package bech32

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidLength is returned when a string is shorter than 8 or
	// longer than 90 characters, or carries no data after the separator.
	ErrInvalidLength = ErrorKind("ErrInvalidLength")

	// ErrInvalidCharacter is returned when a string contains a character
	// outside the printable ASCII range or the bech32 charset.
	ErrInvalidCharacter = ErrorKind("ErrInvalidCharacter")

	// ErrMixedCase is returned when a string mixes upper and lower case.
	ErrMixedCase = ErrorKind("ErrMixedCase")

	// ErrInvalidSeparatorIndex is returned when the last '1' is missing,
	// first, or inside the checksum.
	ErrInvalidSeparatorIndex = ErrorKind("ErrInvalidSeparatorIndex")

	// ErrInvalidChecksum is returned when neither the bech32 nor the
	// bech32m constant validates the checksum.
	ErrInvalidChecksum = ErrorKind("ErrInvalidChecksum")

	// ErrInvalidEncoding is returned when encoding with an unknown
	// checksum constant.
	ErrInvalidEncoding = ErrorKind("ErrInvalidEncoding")

	// ErrInvalidDataByte is returned when a value to encode doesn't fit
	// in 5 bits.
	ErrInvalidDataByte = ErrorKind("ErrInvalidDataByte")

	// ErrInvalidBitGroups is returned by ConvertBits for group sizes
	// outside 1..8.
	ErrInvalidBitGroups = ErrorKind("ErrInvalidBitGroups")

	// ErrInvalidPadding is returned when regrouping leaves more than 4
	// bits or non-zero padding.
	ErrInvalidPadding = ErrorKind("ErrInvalidPadding")

	// ErrInvalidWitnessVersion is returned when encoding a witness version
	// above 16.
	ErrInvalidWitnessVersion = ErrorKind("ErrInvalidWitnessVersion")

	// ErrUnsupportedWitnessVersion is returned when decoding a witness
	// version other than 0 or 1.
	ErrUnsupportedWitnessVersion = ErrorKind("ErrUnsupportedWitnessVersion")

	// ErrWrongEncodingForVersion is returned when a version 0 program is
	// checksummed with bech32m or a version 1 program with bech32.
	ErrWrongEncodingForVersion = ErrorKind("ErrWrongEncodingForVersion")

	// ErrProgramLengthInvalid is returned when a witness program size
	// does not match its version.
	ErrProgramLengthInvalid = ErrorKind("ErrProgramLengthInvalid")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a bech32 encoding or decoding error.  It has full support
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
