package address

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/reddcoin-project/go-rddcore/bech32"
	"github.com/reddcoin-project/go-rddcore/network"
	"github.com/reddcoin-project/go-rddcore/payment"
)

// Address is a hash of a key or script, the type of output paying to it
// and the network it belongs to.  The network parameters are copied at
// construction, so unregistering a network never affects an Address.
type Address struct {
	hash []byte
	typ  Type
	net  network.Params
}

// NewAddress returns an address for hash.  The hash must be 20 bytes for
// PubKeyHash, ScriptHash and WitnessPubKeyHash and 32 bytes for
// WitnessScriptHash and Taproot.
func NewAddress(hash []byte, net *network.Params, typ Type) (*Address, error) {
	if net == nil {
		return nil, makeError(ErrUnknownNetwork, "network can't be nil")
	}
	if !typ.valid() {
		str := fmt.Sprintf("unsupported address type %v", typ)
		return nil, makeError(ErrUnsupportedType, str)
	}
	if len(hash) != typ.hashLen() {
		str := fmt.Sprintf("%v address requires a %d byte hash, got %d",
			typ, typ.hashLen(), len(hash))
		return nil, makeError(ErrInvalidLength, str)
	}

	h := make([]byte, len(hash))
	copy(h, hash)
	return &Address{hash: h, typ: typ, net: *net}, nil
}

// Hash returns the hash or witness program the address commits to.
func (a *Address) Hash() []byte {
	h := make([]byte, len(a.hash))
	copy(h, a.hash)
	return h
}

// Type returns the address type.
func (a *Address) Type() Type {
	return a.typ
}

// Network returns a copy of the parameters of the address network.
func (a *Address) Network() *network.Params {
	net := a.net
	return &net
}

// Encode formats the address: base58check with the network prefix byte for
// legacy types, bech32 for witness version 0 and bech32m for taproot.
func (a *Address) Encode() (string, error) {
	switch a.typ {
	case PubKeyHash:
		return ToBase58(&Base58{Version: a.net.PubKeyHash, Data: a.hash}), nil

	case ScriptHash:
		return ToBase58(&Base58{Version: a.net.ScriptHash, Data: a.hash}), nil

	case WitnessPubKeyHash, WitnessScriptHash, Taproot:
		sw := &bech32.SegWit{
			HRP:     a.net.Bech32,
			Version: a.typ.witnessVersion(),
			Program: a.hash,
		}
		addr, err := sw.Encode()
		if err != nil {
			return "", mapBech32Error(err)
		}
		return addr, nil
	}

	str := fmt.Sprintf("unsupported address type %v", a.typ)
	return "", makeError(ErrUnsupportedType, str)
}

// String returns the encoded address.
func (a *Address) String() string {
	addr, err := a.Encode()
	if err != nil {
		return ""
	}
	return addr
}

// OutputScript returns the script paying to the address.
func (a *Address) OutputScript() ([]byte, error) {
	switch a.typ {
	case PubKeyHash:
		return payment.PubKeyHashScript(a.hash), nil
	case ScriptHash:
		return payment.ScriptHashScript(a.hash), nil
	case WitnessPubKeyHash, WitnessScriptHash, Taproot:
		return payment.WitnessProgramScript(a.typ.witnessVersion(), a.hash)
	}

	str := fmt.Sprintf("unsupported address type %v", a.typ)
	return nil, makeError(ErrUnsupportedType, str)
}

// Equal reports whether both addresses have the same hash, type and network
// name.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.typ == other.typ && a.net.Name == other.net.Name &&
		bytes.Equal(a.hash, other.hash)
}

// Object is the plain serialized form of an address.
type Object struct {
	Hash    string `json:"hash"`
	Type    string `json:"type"`
	Network string `json:"network,omitempty"`
}

// ToObject returns the plain serialized form of the address.
func (a *Address) ToObject() Object {
	return Object{
		Hash:    hex.EncodeToString(a.hash),
		Type:    a.typ.String(),
		Network: a.net.Name,
	}
}

// MarshalJSON encodes the address in its object form.
func (a *Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToObject())
}

// UnmarshalJSON decodes an object form address, resolving its network in
// the default registry.
func (a *Address) UnmarshalJSON(data []byte) error {
	var obj Object
	if err := json.Unmarshal(data, &obj); err != nil {
		str := fmt.Sprintf("invalid address object: %v", err)
		return makeError(ErrMalformedInput, str)
	}
	addr, err := FromObject(obj)
	if err != nil {
		return err
	}
	*a = *addr
	return nil
}
