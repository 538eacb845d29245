package payment

import (
	"github.com/reddcoin-project/go-rddcore/pubkey"
	"github.com/reddcoin-project/go-rddcore/taproot"
)

const (
	taprootVersion = byte(0x01)
)

// FromTweakedKey creates a P2TR payment from a 32-byte x-only output key.
func FromTweakedKey(xOnly []byte) (*Payment, error) {
	if !pubkey.IsValidTaproot(xOnly) {
		return nil, makeError(ErrInvalidKey,
			"tweaked key must be a valid 32-byte x coordinate")
	}

	key := make([]byte, len(xOnly))
	copy(key, xOnly)
	witnessScript, err := WitnessProgramScript(taprootVersion, key)
	if err != nil {
		return nil, err
	}
	return &Payment{
		WitnessScript: witnessScript,
		TaprootKey:    key,
	}, nil
}

// FromTaprootKey creates a P2TR payment committing to the internal key and
// an optional script tree root.  A nil root gives a key path only output.
func FromTaprootKey(internalKey *pubkey.PublicKey, merkleRoot []byte) (*Payment, error) {
	if internalKey == nil {
		return nil, makeError(ErrInvalidKey, "internal key can't be nil")
	}

	res, err := internalKey.TapTweak(merkleRoot)
	if err != nil {
		return nil, err
	}

	p, err := FromTweakedKey(res.TweakedXOnly)
	if err != nil {
		return nil, err
	}
	p.PublicKey = internalKey
	return p, nil
}

// FromScriptTree creates a P2TR payment committing to the internal key and
// the root of tree.
func FromScriptTree(internalKey *pubkey.PublicKey, tree *taproot.ScriptTree) (*Payment, error) {
	if tree == nil {
		return FromTaprootKey(internalKey, nil)
	}
	return FromTaprootKey(internalKey, tree.MerkleRoot())
}
