package taproot

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As.
type ErrorKind string

const (
	// ErrNoLeaves is returned when a script tree is built from nothing.
	ErrNoLeaves = ErrorKind("ErrNoLeaves")

	// ErrInvalidLeafVersion is returned for a leaf version with the low
	// bit set, which collides with the control block parity bit.
	ErrInvalidLeafVersion = ErrorKind("ErrInvalidLeafVersion")

	// ErrDuplicateLeaf is returned when two leaves share a leaf hash.
	ErrDuplicateLeaf = ErrorKind("ErrDuplicateLeaf")

	// ErrUnknownLeaf is returned when a proof is requested for a leaf
	// that is not part of the tree.
	ErrUnknownLeaf = ErrorKind("ErrUnknownLeaf")
)

func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to taproot script trees.
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
