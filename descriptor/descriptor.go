// Package descriptor parses output script descriptors (BIP380 family) made
// of concrete keys and derives the Reddcoin address they describe.
//
// Supported expressions are pkh, wpkh, sh, wsh, tr (key path only), multi,
// sortedmulti, addr and raw.  Keys are hex public keys, x-only keys inside
// tr, or WIF private keys of the descriptor network, each with an optional
// [fingerprint/path] origin.  Extended keys are rejected.
package descriptor

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/txscript"

	"github.com/reddcoin-project/go-rddcore/address"
	"github.com/reddcoin-project/go-rddcore/network"
	"github.com/reddcoin-project/go-rddcore/payment"
	"github.com/reddcoin-project/go-rddcore/pubkey"
)

// Descriptor is a parsed output descriptor bound to a network.
type Descriptor struct {
	fn        string
	keys      []Key
	threshold int
	inner     *Descriptor
	addr      *address.Address
	raw       []byte
	net       *network.Params
}

// Parse parses desc for net.  A nil net selects the default network.  The
// #checksum suffix is optional but verified when present.
func Parse(desc string, net *network.Params) (*Descriptor, error) {
	if net == nil {
		net = network.DefaultRegistry().Default()
		if net == nil {
			return nil, makeError(ErrMalformedDescriptor, "no default network")
		}
	}

	body, err := trimChecksum(strings.TrimSpace(desc))
	if err != nil {
		return nil, err
	}
	d, err := parseExpression(body, net, "")
	if err != nil {
		return nil, err
	}

	log.Tracef("Parsed %s descriptor for %s", d.fn, net.Name)
	return d, nil
}

// allowed lists the expressions each context accepts.  The empty context
// is the top level.
var allowed = map[string][]string{
	"":    {"pkh", "wpkh", "sh", "wsh", "tr", "addr", "raw"},
	"sh":  {"pkh", "wpkh", "wsh", "multi", "sortedmulti"},
	"wsh": {"pkh", "multi", "sortedmulti"},
}

func splitFunc(s string) (string, string, error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		str := fmt.Sprintf("%q is not a script expression", s)
		return "", "", makeError(ErrMalformedDescriptor, str)
	}
	return s[:open], s[open+1 : len(s)-1], nil
}

func parseExpression(s string, net *network.Params, ctx string) (*Descriptor, error) {
	fn, args, err := splitFunc(s)
	if err != nil {
		return nil, err
	}

	ok := false
	for _, name := range allowed[ctx] {
		ok = ok || name == fn
	}
	if !ok {
		str := fmt.Sprintf("%s() is not allowed at top level", fn)
		if ctx != "" {
			str = fmt.Sprintf("%s() is not allowed inside %s()", fn, ctx)
		}
		return nil, makeError(ErrUnsupportedExpression, str)
	}

	d := &Descriptor{fn: fn, net: net}
	switch fn {
	case "pkh", "wpkh", "tr":
		key, err := parseKey(args, net, fn == "tr")
		if err != nil {
			return nil, err
		}
		if fn != "pkh" || ctx == "wsh" {
			if !key.PubKey.Compressed() {
				str := fmt.Sprintf("%s() needs a compressed key", fn)
				return nil, makeError(ErrInvalidKey, str)
			}
		}
		d.keys = []Key{key}

	case "sh", "wsh":
		if d.inner, err = parseExpression(args, net, fn); err != nil {
			return nil, err
		}

	case "multi", "sortedmulti":
		parts := strings.Split(args, ",")
		if len(parts) < 2 {
			return nil, makeError(ErrMalformedDescriptor,
				fn+"() needs a threshold and at least one key")
		}
		if d.threshold, err = strconv.Atoi(parts[0]); err != nil {
			str := fmt.Sprintf("invalid threshold %q", parts[0])
			return nil, makeError(ErrMalformedDescriptor, str)
		}
		for _, p := range parts[1:] {
			key, err := parseKey(p, net, false)
			if err != nil {
				return nil, err
			}
			if ctx == "wsh" && !key.PubKey.Compressed() {
				return nil, makeError(ErrInvalidKey,
					"wsh() needs compressed keys")
			}
			d.keys = append(d.keys, key)
		}
		if d.threshold < 1 || d.threshold > len(d.keys) ||
			len(d.keys) > txscript.MaxPubKeysPerMultiSig {

			str := fmt.Sprintf("%s() threshold %d of %d keys is out of range",
				fn, d.threshold, len(d.keys))
			return nil, makeError(ErrMalformedDescriptor, str)
		}

	case "addr":
		if d.addr, err = address.Decode(args, net, 0); err != nil {
			return nil, err
		}

	case "raw":
		if d.raw, err = hex.DecodeString(args); err != nil || len(d.raw) == 0 {
			str := fmt.Sprintf("raw() needs a non-empty hex script, got %q", args)
			return nil, makeError(ErrMalformedDescriptor, str)
		}
	}
	return d, nil
}

// Type returns the outermost expression name, e.g. wpkh or sh.
func (d *Descriptor) Type() string {
	return d.fn
}

// Network returns the network the descriptor was parsed for.
func (d *Descriptor) Network() *network.Params {
	return d.net
}

// Keys returns the keys of the descriptor, innermost expression first.
func (d *Descriptor) Keys() []Key {
	if d.inner != nil {
		return d.inner.Keys()
	}
	return append([]Key(nil), d.keys...)
}

func (d *Descriptor) pubKeys() []*pubkey.PublicKey {
	keys := d.keys
	if d.fn == "sortedmulti" {
		keys = sortKeys(keys)
	}
	pubs := make([]*pubkey.PublicKey, 0, len(keys))
	for _, k := range keys {
		pubs = append(pubs, k.PubKey)
	}
	return pubs
}

// script returns the script of the expression: the output script for
// address-bearing expressions and the bare multisig script for multi.
func (d *Descriptor) script() ([]byte, error) {
	switch d.fn {
	case "multi", "sortedmulti":
		p, err := payment.FromPublicKeys(d.pubKeys(), d.threshold)
		if err != nil {
			return nil, err
		}
		return p.Redeem.Script, nil
	case "raw":
		return append([]byte(nil), d.raw...), nil
	}

	a, err := d.Address()
	if err != nil {
		return nil, err
	}
	return a.OutputScript()
}

// Script returns the output script the descriptor describes.
func (d *Descriptor) Script() ([]byte, error) {
	return d.script()
}

// Address returns the address of the output script.  raw() descriptors
// of non-standard scripts fail with ErrNoAddress.
func (d *Descriptor) Address() (*address.Address, error) {
	switch d.fn {
	case "pkh":
		return address.FromPublicKey(d.keys[0].PubKey, d.net, address.PubKeyHash)
	case "wpkh":
		return address.FromPublicKey(d.keys[0].PubKey, d.net, address.WitnessPubKeyHash)
	case "tr":
		return address.FromPublicKey(d.keys[0].PubKey, d.net, address.Taproot)
	case "addr":
		return d.addr, nil

	case "sh", "wsh":
		redeem, err := d.inner.script()
		if err != nil {
			return nil, err
		}
		typ := address.ScriptHash
		if d.fn == "wsh" {
			typ = address.WitnessScriptHash
		}
		return address.FromRedeemScript(redeem, d.net, typ)

	case "raw":
		switch txscript.GetScriptClass(d.raw) {
		case txscript.PubKeyHashTy, txscript.ScriptHashTy,
			txscript.WitnessV0PubKeyHashTy, txscript.WitnessV0ScriptHashTy,
			txscript.WitnessV1TaprootTy:
			return address.FromScript(d.raw, d.net)
		}
	}

	str := fmt.Sprintf("%s() output has no address", d.fn)
	return nil, makeError(ErrNoAddress, str)
}

func (d *Descriptor) body() string {
	switch d.fn {
	case "sh", "wsh":
		return d.fn + "(" + d.inner.body() + ")"
	case "multi", "sortedmulti":
		parts := make([]string, 0, len(d.keys)+1)
		parts = append(parts, strconv.Itoa(d.threshold))
		for _, k := range d.keys {
			parts = append(parts, k.String())
		}
		return d.fn + "(" + strings.Join(parts, ",") + ")"
	case "addr":
		return "addr(" + d.addr.String() + ")"
	case "raw":
		return "raw(" + hex.EncodeToString(d.raw) + ")"
	}
	return d.fn + "(" + d.keys[0].String() + ")"
}

// String returns the descriptor in canonical public form with its
// checksum.  Private keys are rendered as their public keys.
func (d *Descriptor) String() string {
	body := d.body()
	sum, _ := Checksum(body)
	return body + "#" + sum
}
