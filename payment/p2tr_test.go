package payment_test

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddcoin-project/go-rddcore/payment"
	"github.com/reddcoin-project/go-rddcore/taproot"
)

const tweakedKeyHex = "cb95d03766dbdbebb5269daad2719e04e6147feba6d63f7e770e64ddf494924d"

func TestFromTaprootKey(t *testing.T) {
	internal := mustKey(t, pubKeyHex)

	pay, err := payment.FromTaprootKey(internal, nil)
	require.NoError(t, err)
	assert.Equal(t, tweakedKeyHex, hex.EncodeToString(pay.TaprootKey))
	assert.Equal(t, "5120"+tweakedKeyHex, hex.EncodeToString(pay.WitnessScript))
	assert.Equal(t, txscript.WitnessV1TaprootTy,
		txscript.GetScriptClass(pay.WitnessScript))
	assert.True(t, internal.IsEqual(pay.PublicKey))
}

func TestFromTaprootKeyWithScriptRoot(t *testing.T) {
	internal := mustKey(t, pubKeyHex)

	leaf := txscript.NewBaseTapLeaf([]byte{txscript.OP_TRUE})
	tree := txscript.AssembleTaprootScriptTree(leaf)
	root := tree.RootNode.TapHash()

	pay, err := payment.FromTaprootKey(internal, root[:])
	require.NoError(t, err)

	expected := txscript.ComputeTaprootOutputKey(internal.ToBTCEC(), root[:])
	assert.Equal(t, schnorr.SerializePubKey(expected), pay.TaprootKey)
}

func TestFromTweakedKey(t *testing.T) {
	pay, err := payment.FromTweakedKey(h2b(tweakedKeyHex))
	require.NoError(t, err)
	assert.Equal(t, "5120"+tweakedKeyHex, hex.EncodeToString(pay.WitnessScript))

	_, err = payment.FromTweakedKey(h2b(tweakedKeyHex)[:31])
	assert.ErrorIs(t, err, payment.ErrInvalidKey)

	five := make([]byte, 32)
	five[31] = 5
	_, err = payment.FromTweakedKey(five)
	assert.ErrorIs(t, err, payment.ErrInvalidKey)

	_, err = payment.FromTaprootKey(nil, nil)
	assert.ErrorIs(t, err, payment.ErrInvalidKey)
}

func TestFromScriptTree(t *testing.T) {
	internal := mustKey(t, pubKeyHex)
	scripts := [][]byte{
		{txscript.OP_TRUE},
		{txscript.OP_1, txscript.OP_DROP, txscript.OP_TRUE},
		{txscript.OP_2, txscript.OP_DROP, txscript.OP_TRUE},
	}

	tree, err := taproot.NewScriptTreeFromScripts(scripts...)
	require.NoError(t, err)
	pay, err := payment.FromScriptTree(internal, tree)
	require.NoError(t, err)

	leaves := make([]txscript.TapLeaf, 0, len(scripts))
	for _, s := range scripts {
		leaves = append(leaves, txscript.NewBaseTapLeaf(s))
	}
	root := txscript.AssembleTaprootScriptTree(leaves...).RootNode.TapHash()
	expected := txscript.ComputeTaprootOutputKey(internal.ToBTCEC(), root[:])
	assert.Equal(t, schnorr.SerializePubKey(expected), pay.TaprootKey)

	keyOnly, err := payment.FromScriptTree(internal, nil)
	require.NoError(t, err)
	assert.Equal(t, tweakedKeyHex, hex.EncodeToString(keyOnly.TaprootKey))
}
