package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/reddcoin-project/go-rddcore/bech32"
	"github.com/reddcoin-project/go-rddcore/network"
)

// Codec parses addresses against the networks of a registry.
type Codec struct {
	registry *network.Registry
}

// NewCodec returns a codec resolving networks in registry.
func NewCodec(registry *network.Registry) *Codec {
	return &Codec{registry: registry}
}

var defaultCodec = NewCodec(network.DefaultRegistry())

// DefaultCodec returns the codec over the process-wide network registry.
func DefaultCodec() *Codec {
	return defaultCodec
}

// Registry returns the registry the codec resolves networks in.
func (c *Codec) Registry() *network.Registry {
	return c.registry
}

// Decode parses an address string.  Surrounding whitespace is ignored.  A
// non-nil expectNet and a non-zero expectType restrict the accepted
// addresses.
func (c *Codec) Decode(addr string, expectNet *network.Params, expectType Type) (*Address, error) {
	s := strings.TrimSpace(addr)
	if s == "" {
		return nil, makeError(ErrUnrecognizedFormat, "empty address")
	}

	a, err := c.decode(s)
	if err != nil {
		log.Tracef("Failed to decode address %q: %v", s, err)
		return nil, err
	}
	if err := checkExpected(a, expectNet, expectType); err != nil {
		return nil, err
	}
	return a, nil
}

func (c *Codec) decode(s string) (*Address, error) {
	if !c.hasBech32Prefix(s) {
		return c.decodeBase58(s)
	}

	a, err := c.decodeBech32(s)
	if err == nil {
		return a, nil
	}

	// A base58 string may happen to start with a registered prefix.
	if b58, b58Err := c.decodeBase58(s); b58Err == nil {
		return b58, nil
	}
	return nil, err
}

// hasBech32Prefix reports whether s starts with the human-readable part and
// separator of a registered network.
func (c *Codec) hasBech32Prefix(s string) bool {
	lower := strings.ToLower(s)
	for _, net := range c.registry.All() {
		if strings.HasPrefix(lower, net.Bech32+"1") {
			return true
		}
	}
	return false
}

func (c *Codec) decodeBech32(s string) (*Address, error) {
	sw, err := bech32.DecodeSegWit(s)
	if err != nil {
		return nil, mapBech32Error(err)
	}

	net := c.registry.ByBech32(sw.HRP)
	if net == nil {
		str := fmt.Sprintf("unknown bech32 prefix %q", sw.HRP)
		return nil, makeError(ErrUnrecognizedFormat, str)
	}

	typ, ok := typeForProgram(sw.Version, sw.Program)
	if !ok {
		str := fmt.Sprintf("invalid program length %d for witness "+
			"version %d", len(sw.Program), sw.Version)
		return nil, makeError(ErrProgramLengthInvalid, str)
	}
	return NewAddress(sw.Program, net, typ)
}

func (c *Codec) decodeBase58(s string) (*Address, error) {
	b58, err := FromBase58(s)
	if err != nil {
		return nil, err
	}
	return c.fromVersion(b58.Version, b58.Data)
}

// fromVersion resolves a legacy version byte to its network and type.
func (c *Codec) fromVersion(version byte, hash []byte) (*Address, error) {
	net, kind := c.registry.ByAddrID(version)
	var typ Type
	switch kind {
	case network.PubKeyHashAddr:
		typ = PubKeyHash
	case network.ScriptHashAddr:
		typ = ScriptHash
	default:
		str := fmt.Sprintf("unknown address version byte 0x%02x", version)
		return nil, makeError(ErrUnrecognizedFormat, str)
	}
	return NewAddress(hash, net, typ)
}

func checkExpected(a *Address, expectNet *network.Params, expectType Type) error {
	if expectNet != nil && expectNet.Name != a.net.Name {
		return makeError(ErrNetworkMismatch, msgNetworkMismatch)
	}
	if expectType != 0 && expectType != a.typ {
		return makeError(ErrTypeMismatch, msgTypeMismatch)
	}
	return nil
}

// mapBech32Error translates bech32 decoding failures into address error
// kinds.
func mapBech32Error(err error) error {
	var kind ErrorKind
	switch {
	case errors.Is(err, bech32.ErrInvalidChecksum):
		kind = ErrInvalidChecksum
	case errors.Is(err, bech32.ErrUnsupportedWitnessVersion):
		kind = ErrUnsupportedWitnessVersion
	case errors.Is(err, bech32.ErrWrongEncodingForVersion):
		kind = ErrWrongChecksumAlgorithmForVersion
	case errors.Is(err, bech32.ErrProgramLengthInvalid):
		kind = ErrProgramLengthInvalid
	default:
		kind = ErrUnrecognizedFormat
	}
	return makeError(kind, err.Error())
}

// ValidationError returns the error Decode would fail with, or nil.
func (c *Codec) ValidationError(addr string, expectNet *network.Params, expectType Type) error {
	_, err := c.Decode(addr, expectNet, expectType)
	return err
}

// IsValid reports whether Decode would succeed.
func (c *Codec) IsValid(addr string, expectNet *network.Params, expectType Type) bool {
	return c.ValidationError(addr, expectNet, expectType) == nil
}

// FromBuffer parses a legacy 21-byte buffer made of the version byte of a
// registered network followed by a 20-byte hash.
func (c *Codec) FromBuffer(b []byte, expectNet *network.Params, expectType Type) (*Address, error) {
	if len(b) != 1+hash160Len {
		str := fmt.Sprintf("address buffer must be %d bytes, got %d",
			1+hash160Len, len(b))
		return nil, makeError(ErrInvalidLength, str)
	}

	a, err := c.fromVersion(b[0], b[1:])
	if err != nil {
		return nil, err
	}
	if err := checkExpected(a, expectNet, expectType); err != nil {
		return nil, err
	}
	return a, nil
}

// FromObject rebuilds an address from its object form.  An empty network
// name selects the default network of the registry.
func (c *Codec) FromObject(obj Object) (*Address, error) {
	hash, err := hex.DecodeString(obj.Hash)
	if err != nil {
		str := fmt.Sprintf("address hash must be hex encoded: %v", err)
		return nil, makeError(ErrMalformedInput, str)
	}

	typ, err := ParseType(obj.Type)
	if err != nil {
		return nil, err
	}

	net, err := c.network(obj.Network)
	if err != nil {
		return nil, err
	}
	return NewAddress(hash, net, typ)
}

// network resolves a network name, or the default network for "".
func (c *Codec) network(name string) (*network.Params, error) {
	if name == "" {
		if net := c.registry.Default(); net != nil {
			return net, nil
		}
		return nil, makeError(ErrUnknownNetwork, "no default network")
	}
	if net := c.registry.ByName(name); net != nil {
		return net, nil
	}
	str := fmt.Sprintf("network %q is not registered", name)
	return nil, makeError(ErrUnknownNetwork, str)
}

// Decode parses an address against the default registry.  See
// Codec.Decode.
func Decode(addr string, expectNet *network.Params, expectType Type) (*Address, error) {
	return defaultCodec.Decode(addr, expectNet, expectType)
}

// ValidationError validates an address against the default registry.
func ValidationError(addr string, expectNet *network.Params, expectType Type) error {
	return defaultCodec.ValidationError(addr, expectNet, expectType)
}

// IsValid validates an address against the default registry.
func IsValid(addr string, expectNet *network.Params, expectType Type) bool {
	return defaultCodec.IsValid(addr, expectNet, expectType)
}

// FromBuffer parses a legacy buffer against the default registry.
func FromBuffer(b []byte, expectNet *network.Params, expectType Type) (*Address, error) {
	return defaultCodec.FromBuffer(b, expectNet, expectType)
}

// FromObject rebuilds an address against the default registry.
func FromObject(obj Object) (*Address, error) {
	return defaultCodec.FromObject(obj)
}
