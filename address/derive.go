package address

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/txscript"

	"github.com/reddcoin-project/go-rddcore/network"
	"github.com/reddcoin-project/go-rddcore/payment"
	"github.com/reddcoin-project/go-rddcore/pubkey"
	"github.com/reddcoin-project/go-rddcore/taproot"
)

// resolveNetwork defaults a nil network to the default one of the
// process-wide registry.
func resolveNetwork(net *network.Params) (*network.Params, error) {
	if net != nil {
		return net, nil
	}
	if def := network.DefaultRegistry().Default(); def != nil {
		return def, nil
	}
	return nil, makeError(ErrUnknownNetwork, "no default network")
}

// FromPublicKey derives an address paying to pub.  PubKeyHash hashes the key
// in its own serialization, WitnessPubKeyHash its compressed form,
// ScriptHash wraps the witness pubkey hash output into P2SH and Taproot
// commits to the key path only tweak of pub.  Witness types fail with
// ErrUncompressedKeyNotAllowed for uncompressed keys.
func FromPublicKey(pub *pubkey.PublicKey, net *network.Params, typ Type) (*Address, error) {
	if pub == nil {
		return nil, makeError(ErrMalformedInput, "public key can't be nil")
	}
	net, err := resolveNetwork(net)
	if err != nil {
		return nil, err
	}

	switch typ {
	case PubKeyHash, WitnessPubKeyHash, ScriptHash, Taproot:
	default:
		str := fmt.Sprintf("cannot derive a %v address from a public key", typ)
		return nil, makeError(ErrUnsupportedType, str)
	}
	if typ != PubKeyHash && !pub.Compressed() {
		return nil, makeError(ErrUncompressedKeyNotAllowed, msgUncompressedWitness)
	}

	p2pkh := payment.FromPublicKey(pub)
	switch typ {
	case PubKeyHash:
		return NewAddress(p2pkh.Hash, net, typ)

	case WitnessPubKeyHash:
		return NewAddress(p2pkh.WitnessHash, net, typ)

	case ScriptHash:
		p2sh, err := payment.FromPayment(p2pkh)
		if err != nil {
			return nil, mapPaymentError(err)
		}
		return NewAddress(p2sh.Hash, net, typ)

	default:
		p2tr, err := payment.FromTaprootKey(pub, nil)
		if err != nil {
			return nil, mapPaymentError(err)
		}
		return NewAddress(p2tr.TaprootKey, net, typ)
	}
}

// FromScriptTree derives the taproot address of internal committed to the
// root of tree.  A nil tree gives the key path only address.
func FromScriptTree(internal *pubkey.PublicKey, tree *taproot.ScriptTree, net *network.Params) (*Address, error) {
	if internal == nil {
		return nil, makeError(ErrMalformedInput, "internal key can't be nil")
	}
	if !internal.Compressed() {
		return nil, makeError(ErrUncompressedKeyNotAllowed, msgUncompressedWitness)
	}
	net, err := resolveNetwork(net)
	if err != nil {
		return nil, err
	}

	p2tr, err := payment.FromScriptTree(internal, tree)
	if err != nil {
		return nil, mapPaymentError(err)
	}
	return NewAddress(p2tr.TaprootKey, net, Taproot)
}

// FromScript derives the address an output script pays to.  Witness
// programs other than v0 hashes and v1 taproot keys fail with
// ErrUnsupportedWitnessVersion.  Other scripts that are not a standard
// output are treated as redeem scripts and paid to through P2SH.
func FromScript(script []byte, net *network.Params) (*Address, error) {
	net, err := resolveNetwork(net)
	if err != nil {
		return nil, err
	}

	if txscript.IsWitnessProgram(script) {
		p, err := payment.FromScript(script)
		if err != nil {
			return nil, mapPaymentError(err)
		}
		switch {
		case p.TaprootKey != nil:
			return NewAddress(p.TaprootKey, net, Taproot)
		case p.Hash != nil:
			return NewAddress(p.WitnessHash, net, WitnessPubKeyHash)
		default:
			return NewAddress(p.WitnessHash, net, WitnessScriptHash)
		}
	}

	typ := PubKeyHash
	switch txscript.GetScriptClass(script) {
	case txscript.PubKeyHashTy:
	case txscript.ScriptHashTy:
		typ = ScriptHash
	default:
		return FromRedeemScript(script, net, ScriptHash)
	}

	p, err := payment.FromScript(script)
	if err != nil {
		return nil, mapPaymentError(err)
	}
	return NewAddress(p.Hash, net, typ)
}

// FromRedeemScript derives the ScriptHash or WitnessScriptHash address of a
// redeem script.
func FromRedeemScript(script []byte, net *network.Params, typ Type) (*Address, error) {
	net, err := resolveNetwork(net)
	if err != nil {
		return nil, err
	}

	wrapped, err := payment.FromPayment(&payment.Payment{Script: script})
	if err != nil {
		return nil, mapPaymentError(err)
	}

	switch typ {
	case ScriptHash:
		return NewAddress(wrapped.Hash, net, typ)
	case WitnessScriptHash:
		return NewAddress(wrapped.WitnessHash, net, typ)
	}

	str := fmt.Sprintf("cannot derive a %v address from a redeem script", typ)
	return nil, makeError(ErrUnsupportedType, str)
}

// NewMultisig derives the ScriptHash or WitnessScriptHash address of a
// threshold-of-len(pubs) multisig script.  Keys are committed in the order
// given.
func NewMultisig(pubs []*pubkey.PublicKey, threshold int, net *network.Params, typ Type) (*Address, error) {
	if typ != ScriptHash && typ != WitnessScriptHash {
		str := fmt.Sprintf("cannot derive a %v multisig address", typ)
		return nil, makeError(ErrUnsupportedType, str)
	}

	p, err := multisig(pubs, threshold, typ == WitnessScriptHash)
	if err != nil {
		return nil, err
	}
	net, err = resolveNetwork(net)
	if err != nil {
		return nil, err
	}

	if typ == ScriptHash {
		return NewAddress(p.Hash, net, typ)
	}
	return NewAddress(p.WitnessHash, net, typ)
}

// NewNestedWitnessMultisig derives the P2SH address wrapping the P2WSH
// output of a multisig script.
func NewNestedWitnessMultisig(pubs []*pubkey.PublicKey, threshold int, net *network.Params) (*Address, error) {
	p, err := multisig(pubs, threshold, true)
	if err != nil {
		return nil, err
	}
	nested, err := payment.FromPayment(p)
	if err != nil {
		return nil, mapPaymentError(err)
	}

	net, err = resolveNetwork(net)
	if err != nil {
		return nil, err
	}
	return NewAddress(nested.Hash, net, ScriptHash)
}

func multisig(pubs []*pubkey.PublicKey, threshold int, witness bool) (*payment.Payment, error) {
	for _, pub := range pubs {
		if pub == nil {
			return nil, makeError(ErrMalformedInput, "public key can't be nil")
		}
		if witness && !pub.Compressed() {
			return nil, makeError(ErrUncompressedKeyNotAllowed, msgUncompressedWitness)
		}
	}

	p, err := payment.FromPublicKeys(pubs, threshold)
	if err != nil {
		return nil, mapPaymentError(err)
	}
	return p, nil
}

// mapPaymentError translates script template failures into address error
// kinds.
func mapPaymentError(err error) error {
	var kind ErrorKind
	switch {
	case errors.Is(err, payment.ErrInvalidThreshold),
		errors.Is(err, payment.ErrTooManyKeys):
		kind = ErrInvalidThreshold
	case errors.Is(err, payment.ErrUnsupportedProgram):
		kind = ErrUnsupportedWitnessVersion
	default:
		kind = ErrMalformedInput
	}
	return makeError(kind, err.Error())
}
