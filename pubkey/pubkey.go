package pubkey

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// These constants define the lengths of serialized public keys.
const (
	PubKeyBytesLenCompressed   = 33
	PubKeyBytesLenUncompressed = 65
	XOnlyPubKeyLen             = 32
)

const (
	pubkeyCompressed   byte = 0x2 // y_bit + x coord
	pubkeyUncompressed byte = 0x4 // x coord + y coord
)

// fieldPrime is the secp256k1 field prime p.
var fieldPrime = secp.Params().P

// PublicKey is a secp256k1 point that is known to be on the curve and not
// the point at infinity, along with the serialization format it prefers.
// It is never mutated after construction.
type PublicKey struct {
	x, y       secp.FieldVal
	compressed bool
}

// fieldFromBig loads a non-negative integer below the field prime.
func fieldFromBig(n *big.Int, f *secp.FieldVal) bool {
	if n == nil || n.Sign() < 0 || n.Cmp(fieldPrime) >= 0 {
		return false
	}
	f.SetByteSlice(n.Bytes())
	return true
}

// isOnCurve reports whether y^2 = x^3 + 7 holds for normalized x and y.
func isOnCurve(x, y *secp.FieldVal) bool {
	var lhs, rhs secp.FieldVal
	lhs.SquareVal(y).Normalize()
	rhs.SquareVal(x).Mul(x).AddInt(7).Normalize()
	return lhs.Equals(&rhs)
}

// Validate checks that (x, y) is a point of the secp256k1 curve other than
// the point at infinity.
func Validate(x, y *big.Int) error {
	_, err := newPublicKey(x, y, true)
	return err
}

func newPublicKey(x, y *big.Int, compressed bool) (*PublicKey, error) {
	if x == nil || y == nil {
		return nil, makeError(ErrMalformedInput, "point coordinates can't be nil")
	}
	if x.Sign() == 0 && y.Sign() == 0 {
		return nil, makeError(ErrPointIsInfinity,
			"point cannot be equal to infinity")
	}

	pub := &PublicKey{compressed: compressed}
	if !fieldFromBig(x, &pub.x) || !fieldFromBig(y, &pub.y) {
		return nil, makeError(ErrPointNotOnCurve,
			"point coordinates must be in range [0, p)")
	}
	if !isOnCurve(&pub.x, &pub.y) {
		str := fmt.Sprintf("point [%x, %x] is not on the secp256k1 curve",
			x, y)
		return nil, makeError(ErrPointNotOnCurve, str)
	}
	return pub, nil
}

// NewPublicKey returns the public key at (x, y) after validating the point.
func NewPublicKey(x, y *big.Int, compressed bool) (*PublicKey, error) {
	return newPublicKey(x, y, compressed)
}

// liftX solves the curve equation for the given x and picks the root whose
// oddness matches odd.
func liftX(fx *secp.FieldVal, odd bool) (*PublicKey, bool) {
	pub := &PublicKey{compressed: true}
	pub.x.Set(fx).Normalize()
	if !secp.DecompressY(&pub.x, odd, &pub.y) {
		return nil, false
	}
	pub.y.Normalize()
	return pub, true
}

// FromX lifts an x coordinate to the curve point whose y has the requested
// oddness.  The resulting key serializes compressed.
func FromX(odd bool, x *big.Int) (*PublicKey, error) {
	var fx secp.FieldVal
	if !fieldFromBig(x, &fx) {
		return nil, makeError(ErrInvalidX, "x coordinate must be in range [0, p)")
	}
	pub, ok := liftX(&fx, odd)
	if !ok {
		str := fmt.Sprintf("invalid x coordinate %x: no point on the "+
			"secp256k1 curve", x)
		return nil, makeError(ErrInvalidX, str)
	}
	return pub, nil
}

// ParsePubKey parses a public key in the SEC compressed or uncompressed
// format:
//
// Compressed:
//
//	<format byte = 0x02/0x03><32-byte X coordinate>
//
// Uncompressed:
//
//	<format byte = 0x04><32-byte X coordinate><32-byte Y coordinate>
func ParsePubKey(b []byte) (*PublicKey, error) {
	if len(b) == 0 {
		return nil, makeError(ErrInvalidLength, "invalid public key: empty")
	}

	switch format := b[0]; format {
	case pubkeyCompressed, pubkeyCompressed | 0x1:
		if len(b) != PubKeyBytesLenCompressed {
			str := fmt.Sprintf("invalid public key: compressed format "+
				"requires %d bytes, got %d", PubKeyBytesLenCompressed, len(b))
			return nil, makeError(ErrInvalidLength, str)
		}
		return FromX(format&0x1 == 0x1, new(big.Int).SetBytes(b[1:]))

	case pubkeyUncompressed:
		if len(b) != PubKeyBytesLenUncompressed {
			str := fmt.Sprintf("invalid public key: uncompressed format "+
				"requires %d bytes, got %d", PubKeyBytesLenUncompressed, len(b))
			return nil, makeError(ErrInvalidLength, str)
		}
		x := new(big.Int).SetBytes(b[1:33])
		y := new(big.Int).SetBytes(b[33:])
		return newPublicKey(x, y, false)

	default:
		str := fmt.Sprintf("invalid public key: unsupported format: %x", format)
		return nil, makeError(ErrUnsupportedPrefix, str)
	}
}

// FromHex parses a hex encoded SEC public key.
func FromHex(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		str := fmt.Sprintf("invalid public key hex: %v", err)
		return nil, makeError(ErrMalformedInput, str)
	}
	return ParsePubKey(b)
}

// FromPrivateKey derives the compressed public key of a 32-byte big endian
// private scalar.
func FromPrivateKey(priv []byte) (*PublicKey, error) {
	if len(priv) != 32 {
		str := fmt.Sprintf("private key must be 32 bytes, got %d", len(priv))
		return nil, makeError(ErrInvalidPrivateKey, str)
	}
	var k secp.ModNScalar
	if overflow := k.SetByteSlice(priv); overflow || k.IsZero() {
		return nil, makeError(ErrInvalidPrivateKey,
			"private key must be in range [1, N)")
	}

	var point secp.JacobianPoint
	secp.ScalarBaseMultNonConst(&k, &point)
	k.Zero()
	return FromPoint(&point, true)
}

// FromPoint returns the public key of a jacobian point.
func FromPoint(point *secp.JacobianPoint, compressed bool) (*PublicKey, error) {
	p := *point
	if (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero() {
		return nil, makeError(ErrPointIsInfinity,
			"point cannot be equal to infinity")
	}
	p.ToAffine()

	pub := &PublicKey{x: p.X, y: p.Y, compressed: compressed}
	if !isOnCurve(&pub.x, &pub.y) {
		return nil, makeError(ErrPointNotOnCurve,
			"point is not on the secp256k1 curve")
	}
	return pub, nil
}

// FromBTCEC converts a btcec public key.
func FromBTCEC(key *btcec.PublicKey, compressed bool) (*PublicKey, error) {
	if key == nil {
		return nil, makeError(ErrMalformedInput, "public key can't be nil")
	}
	var point secp.JacobianPoint
	key.AsJacobian(&point)
	return FromPoint(&point, compressed)
}

// ToBTCEC returns the key as a btcec public key.
func (p *PublicKey) ToBTCEC() *btcec.PublicKey {
	x, y := p.x, p.y
	return btcec.NewPublicKey(&x, &y)
}

// X returns the x coordinate of the public key.
func (p *PublicKey) X() *big.Int {
	return new(big.Int).SetBytes(p.x.Bytes()[:])
}

// Y returns the y coordinate of the public key.
func (p *PublicKey) Y() *big.Int {
	return new(big.Int).SetBytes(p.y.Bytes()[:])
}

// Compressed reports whether the key serializes in the compressed format.
func (p *PublicKey) Compressed() bool {
	return p.compressed
}

// IsYOdd reports whether the y coordinate is odd.
func (p *PublicKey) IsYOdd() bool {
	return p.y.IsOdd()
}

// SerializeUncompressed serializes a public key in a 65-byte uncompressed
// format.
func (p *PublicKey) SerializeUncompressed() []byte {
	b := make([]byte, PubKeyBytesLenUncompressed)
	b[0] = pubkeyUncompressed
	p.x.PutBytesUnchecked(b[1:33])
	p.y.PutBytesUnchecked(b[33:65])
	return b
}

// SerializeCompressed serializes a public key in a 33-byte compressed format.
func (p *PublicKey) SerializeCompressed() []byte {
	b := make([]byte, PubKeyBytesLenCompressed)
	b[0] = pubkeyCompressed
	if p.y.IsOdd() {
		b[0] |= 0x1
	}
	p.x.PutBytesUnchecked(b[1:33])
	return b
}

// ToDER serializes the key in the requested SEC format.
func (p *PublicKey) ToDER(compressed bool) []byte {
	if compressed {
		return p.SerializeCompressed()
	}
	return p.SerializeUncompressed()
}

// Serialize serializes the key in its preferred format.
func (p *PublicKey) Serialize() []byte {
	return p.ToDER(p.compressed)
}

// XOnly returns the 32-byte x coordinate used by taproot.
func (p *PublicKey) XOnly() []byte {
	b := make([]byte, XOnlyPubKeyLen)
	p.x.PutBytesUnchecked(b)
	return b
}

// String returns the hex encoding of the key in its preferred format.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Serialize())
}

// IsEqual reports whether both keys are the same curve point.  Two nil keys
// are equal.
func (p *PublicKey) IsEqual(other *PublicKey) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.x.Equals(&other.x) && p.y.Equals(&other.y)
}

type publicKeyObject struct {
	X          string `json:"x"`
	Y          string `json:"y"`
	Compressed bool   `json:"compressed"`
}

// MarshalJSON encodes the key as {x, y, compressed} with hex coordinates.
func (p *PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(publicKeyObject{
		X:          hex.EncodeToString(p.x.Bytes()[:]),
		Y:          hex.EncodeToString(p.y.Bytes()[:]),
		Compressed: p.compressed,
	})
}

// UnmarshalJSON decodes and validates a key encoded by MarshalJSON.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var obj publicKeyObject
	if err := json.Unmarshal(data, &obj); err != nil {
		str := fmt.Sprintf("invalid public key object: %v", err)
		return makeError(ErrMalformedInput, str)
	}
	x, okX := new(big.Int).SetString(obj.X, 16)
	y, okY := new(big.Int).SetString(obj.Y, 16)
	if !okX || !okY {
		return makeError(ErrMalformedInput,
			"public key coordinates must be hex encoded")
	}
	pub, err := newPublicKey(x, y, obj.Compressed)
	if err != nil {
		return err
	}
	*p = *pub
	return nil
}
