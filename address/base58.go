package address

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const hash160Len = 20

// Base58 type defines the structure of a legacy or wrapped segwit address
type Base58 struct {
	Version byte
	Data    []byte
}

// FromBase58 decodes a string that was base58 encoded and verifies the
// checksum.  The payload must be a 20-byte hash.
func FromBase58(address string) (*Base58, error) {
	decoded, version, err := base58.CheckDecode(address)
	if err != nil {
		switch {
		case errors.Is(err, base58.ErrChecksum):
			return nil, makeError(ErrInvalidChecksum,
				"base58 checksum mismatch")
		default:
			return nil, makeError(ErrUnrecognizedFormat,
				"not a base58check string")
		}
	}

	if len(decoded) != hash160Len {
		str := fmt.Sprintf("base58 payload is %d bytes, want %d",
			len(decoded), hash160Len)
		return nil, makeError(ErrInvalidLength, str)
	}

	return &Base58{Version: version, Data: decoded}, nil
}

// ToBase58 prepends a version byte and appends a four byte checksum.
func ToBase58(b *Base58) string {
	return base58.CheckEncode(b.Data, b.Version)
}
