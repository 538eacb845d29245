package payment

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/btcsuite/btcd/txscript"
	"golang.org/x/crypto/ripemd160"

	"github.com/reddcoin-project/go-rddcore/pubkey"
)

// Payment defines the structure that holds the hashes and output scripts
// different addresses are built from
type Payment struct {
	// Hash is the hash160 committed to by P2PKH and P2SH outputs.
	Hash []byte
	// WitnessHash is the version 0 witness program: a key hash or the
	// sha256 of a script.
	WitnessHash []byte
	// Script is the legacy output script, or the redeem script itself for
	// payments that must be wrapped.
	Script []byte
	// WitnessScript is the segwit output script.
	WitnessScript []byte
	// TaprootKey is the x-only output key of a version 1 program.
	TaprootKey []byte
	Redeem     *Payment
	PublicKey  *pubkey.PublicKey
}

// FromPublicKey creates a pay-to-pubkey-hash Payment.  The key is hashed in
// its own serialization; only compressed keys get a witness program.
func FromPublicKey(pub *pubkey.PublicKey) *Payment {
	pkHash := Hash160(pub.Serialize())
	p := &Payment{
		Hash:      pkHash,
		Script:    PubKeyHashScript(pkHash),
		PublicKey: pub,
	}
	if pub.Compressed() {
		p.WitnessHash = pkHash
		p.WitnessScript, _ = WitnessProgramScript(0, pkHash)
	}
	return p
}

// FromPublicKeys creates a multi-signature Payment from an ordered list of
// public keys.  The keys are committed in the order given.
func FromPublicKeys(pubkeys []*pubkey.PublicKey, nrequired int) (*Payment, error) {
	if nrequired < 1 || len(pubkeys) < nrequired {
		str := fmt.Sprintf("unable to generate multisig script with "+
			"%d required signatures when there are %d public keys "+
			"available", nrequired, len(pubkeys))
		return nil, makeError(ErrInvalidThreshold, str)
	}
	if len(pubkeys) > txscript.MaxPubKeysPerMultiSig {
		str := fmt.Sprintf("too many public keys for multisig: %d > %d",
			len(pubkeys), txscript.MaxPubKeysPerMultiSig)
		return nil, makeError(ErrTooManyKeys, str)
	}

	builder := txscript.NewScriptBuilder().AddInt64(int64(nrequired))
	for _, key := range pubkeys {
		builder.AddData(key.Serialize())
	}
	builder.AddInt64(int64(len(pubkeys)))
	builder.AddOp(txscript.OP_CHECKMULTISIG)

	multiSigScript, err := builder.Script()
	if err != nil {
		return nil, makeError(ErrInvalidScript, err.Error())
	}

	redeem, err := FromScript(multiSigScript)
	if err != nil {
		return nil, err
	}

	return FromPayment(redeem)
}

// FromPayment wraps a Payment into P2SH and P2WSH outputs.  A payment that
// has a witness output script is wrapped through it, so wrapping a
// pay-to-pubkey-hash payment yields P2SH-P2WPKH.
func FromPayment(payment *Payment) (*Payment, error) {
	if len(payment.Script) == 0 && len(payment.WitnessScript) == 0 {
		return nil, makeError(ErrEmptyScript,
			"payment's script can't be empty or nil")
	}

	redeem := payment.copy()
	scriptToHash := redeem.Script
	if len(redeem.WitnessScript) > 0 {
		scriptToHash = redeem.WitnessScript
	}
	scriptHash := Hash160(scriptToHash)
	witnessScriptHash := sha256.Sum256(scriptToHash)
	witnessScript, _ := WitnessProgramScript(0, witnessScriptHash[:])

	return &Payment{
		Hash:          scriptHash,
		WitnessHash:   witnessScriptHash[:],
		Script:        ScriptHashScript(scriptHash),
		WitnessScript: witnessScript,
		Redeem:        redeem,
	}, nil
}

// FromScript parses an output script into a Payment.  Scripts that are not
// a recognized output template are kept as a redeem script to be wrapped
// with FromPayment.
func FromScript(outputScript []byte) (*Payment, error) {
	if len(outputScript) == 0 {
		return nil, makeError(ErrEmptyScript,
			"payment's script can't be empty or nil")
	}

	script := make([]byte, len(outputScript))
	copy(script, outputScript)

	p := &Payment{}
	switch {
	case txscript.IsPayToPubKeyHash(script):
		p.Hash = script[3:23]
		p.Script = script

	case txscript.IsPayToScriptHash(script):
		p.Hash = script[2:22]
		p.Script = script

	case txscript.IsWitnessProgram(script):
		version, program, err := txscript.ExtractWitnessProgramInfo(script)
		if err != nil {
			return nil, makeError(ErrInvalidScript, err.Error())
		}
		p.WitnessScript = script

		switch {
		case version == 0 && len(program) == 20:
			p.Hash = program
			p.WitnessHash = program
			p.Script = PubKeyHashScript(program)
		case version == 0 && len(program) == 32:
			p.WitnessHash = program
		case version == 1 && len(program) == 32:
			p.TaprootKey = program
		default:
			str := fmt.Sprintf("unsupported witness program: version %d, "+
				"%d bytes", version, len(program))
			return nil, makeError(ErrUnsupportedProgram, str)
		}

	// multisig and other redeem scripts, here we do not calculate the
	// hashes because this payment must be wrapped into another one
	default:
		p.Script = script
	}

	return p, nil
}

func (p *Payment) copy() *Payment {
	var redeem *Payment
	if p.Redeem != nil {
		redeem = p.Redeem.copy()
	}
	return &Payment{
		Hash:          p.Hash,
		WitnessHash:   p.WitnessHash,
		Script:        p.Script,
		WitnessScript: p.WitnessScript,
		TaprootKey:    p.TaprootKey,
		Redeem:        redeem,
		PublicKey:     p.PublicKey,
	}
}

// Calculate the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	return calcHash(calcHash(buf, sha256.New()), ripemd160.New())
}

// PubKeyHashScript returns OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY
// OP_CHECKSIG.
func PubKeyHashScript(hash []byte) []byte {
	script, _ := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).AddOp(txscript.OP_HASH160).
		AddData(hash).
		AddOp(txscript.OP_EQUALVERIFY).AddOp(txscript.OP_CHECKSIG).
		Script()
	return script
}

// ScriptHashScript returns OP_HASH160 <hash> OP_EQUAL.
func ScriptHashScript(hash []byte) []byte {
	script, _ := txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).AddData(hash).AddOp(txscript.OP_EQUAL).
		Script()
	return script
}

// WitnessProgramScript returns OP_n <program> for witness versions 0-16.
func WitnessProgramScript(version byte, program []byte) ([]byte, error) {
	if version > 16 {
		str := fmt.Sprintf("invalid witness version %d", version)
		return nil, makeError(ErrUnsupportedProgram, str)
	}
	if len(program) < 2 || len(program) > 40 {
		str := fmt.Sprintf("invalid witness program length %d", len(program))
		return nil, makeError(ErrUnsupportedProgram, str)
	}

	builder := txscript.NewScriptBuilder()
	if version == 0 {
		builder.AddOp(txscript.OP_0)
	} else {
		builder.AddOp(txscript.OP_1 + version - 1)
	}
	script, err := builder.AddData(program).Script()
	if err != nil {
		return nil, makeError(ErrInvalidScript, err.Error())
	}
	return script, nil
}
