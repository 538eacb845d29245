package pubkey

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// TapTweakResult is the output key of a BIP341 key path tweak.
type TapTweakResult struct {
	// TweakedXOnly is the 32-byte x coordinate of the output key Q.
	TweakedXOnly []byte

	// Parity is true when the y coordinate of Q is odd.
	Parity bool

	key *PublicKey
}

// PublicKey returns the full output key Q, serializing compressed.
func (r *TapTweakResult) PublicKey() *PublicKey {
	return r.key
}

// TapTweak computes the taproot output key Q = lift_x(P) + t*G where
// t = H_TapTweak(x(P) || merkleRoot).  P is taken with an even y coordinate
// regardless of the parity of the receiver.  An empty merkleRoot commits to
// the key path only.
func (p *PublicKey) TapTweak(merkleRoot []byte) (*TapTweakResult, error) {
	xOnly := p.XOnly()
	tweakHash := chainhash.TaggedHash(chainhash.TagTapTweak, xOnly, merkleRoot)

	var tweak secp.ModNScalar
	if overflow := tweak.SetByteSlice(tweakHash[:]); overflow {
		return nil, makeError(ErrTweakOutOfRange,
			"tweak hash is not below the curve order")
	}

	var internal, tweakPoint, output secp.JacobianPoint
	internal.X.Set(&p.x)
	internal.Y.Set(&p.y)
	if internal.Y.IsOdd() {
		internal.Y.Negate(1).Normalize()
	}
	internal.Z.SetInt(1)

	secp.ScalarBaseMultNonConst(&tweak, &tweakPoint)
	secp.AddNonConst(&internal, &tweakPoint, &output)

	if output.Z.IsZero() || (output.X.IsZero() && output.Y.IsZero()) {
		return nil, makeError(ErrResultIsInfinity,
			"tweaked key is the point at infinity")
	}

	key, err := FromPoint(&output, true)
	if err != nil {
		return nil, err
	}

	parity := key.IsYOdd()
	log.Tracef("Tweaked internal key %x to %x (odd %v)", xOnly,
		key.XOnly(), parity)

	return &TapTweakResult{
		TweakedXOnly: key.XOnly(),
		Parity:       parity,
		key:          key,
	}, nil
}

// IsValidTaproot reports whether b is a 32-byte x coordinate of a point on
// the curve.  It never returns an error.
func IsValidTaproot(b []byte) bool {
	if len(b) != XOnlyPubKeyLen {
		return false
	}
	var fx secp.FieldVal
	if overflow := fx.SetByteSlice(b); overflow {
		return false
	}
	_, ok := liftX(&fx, false)
	return ok
}

// IsValidTaprootHex is IsValidTaproot over a hex string.
func IsValidTaprootHex(s string) bool {
	b, err := hex.DecodeString(s)
	if err != nil {
		return false
	}
	return IsValidTaproot(b)
}
