package descriptor

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"github.com/reddcoin-project/go-rddcore/network"
	"github.com/reddcoin-project/go-rddcore/pubkey"
)

// KeyOrigin is the [fingerprint/path] prefix of a key expression.
type KeyOrigin struct {
	Fingerprint [4]byte
	Path        []uint32
}

func (o *KeyOrigin) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(hex.EncodeToString(o.Fingerprint[:]))
	for _, step := range o.Path {
		if step >= hdkeychain.HardenedKeyStart {
			fmt.Fprintf(&sb, "/%d'", step-hdkeychain.HardenedKeyStart)
		} else {
			fmt.Fprintf(&sb, "/%d", step)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Key is a parsed key expression.
type Key struct {
	PubKey *pubkey.PublicKey
	Origin *KeyOrigin
	// XOnly is set for 32-byte keys, which only tr() accepts.
	XOnly bool
}

func (k Key) String() string {
	var s string
	if k.Origin != nil {
		s = k.Origin.String()
	}
	if k.XOnly {
		return s + hex.EncodeToString(k.PubKey.XOnly())
	}
	return s + hex.EncodeToString(k.PubKey.Serialize())
}

func isExtendedKey(s string) bool {
	for _, prefix := range []string{"xpub", "xprv", "tpub", "tprv"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func parseKey(expr string, net *network.Params, allowXOnly bool) (Key, error) {
	var key Key

	if strings.HasPrefix(expr, "[") {
		end := strings.IndexByte(expr, ']')
		if end < 0 {
			return key, makeError(ErrInvalidKeyOrigin,
				"key origin start '[' without matching ']'")
		}
		origin, err := parseKeyOrigin(expr[1:end])
		if err != nil {
			return key, err
		}
		key.Origin = origin
		expr = expr[end+1:]
	}
	if strings.ContainsAny(expr, "[]") {
		return key, makeError(ErrInvalidKeyOrigin,
			"multiple key origins found for a single key")
	}

	if isExtendedKey(expr) || strings.Contains(expr, "/") {
		str := fmt.Sprintf("extended key %q needs HD derivation", expr)
		return key, makeError(ErrUnsupportedKey, str)
	}

	if b, err := hex.DecodeString(expr); err == nil {
		switch {
		case len(b) == 32 && allowXOnly:
			pub, err := pubkey.FromX(false, new(big.Int).SetBytes(b))
			if err != nil {
				return key, makeError(ErrInvalidKey, err.Error())
			}
			key.PubKey, key.XOnly = pub, true
			return key, nil
		default:
			pub, err := pubkey.ParsePubKey(b)
			if err != nil {
				return key, makeError(ErrInvalidKey, err.Error())
			}
			key.PubKey = pub
			return key, nil
		}
	}

	pub, err := parseWIF(expr, net)
	if err != nil {
		return key, err
	}
	key.PubKey = pub
	return key, nil
}

// parseWIF decodes a private key in wallet import format and returns its
// public key.  A trailing 0x01 marks a compressed key.
func parseWIF(s string, net *network.Params) (*pubkey.PublicKey, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		str := fmt.Sprintf("key %q is neither hex nor WIF: %v", s, err)
		return nil, makeError(ErrInvalidKey, str)
	}
	if version != net.Wif {
		str := fmt.Sprintf("WIF version 0x%02x does not belong to network %s",
			version, net.Name)
		return nil, makeError(ErrInvalidKey, str)
	}

	compressed := false
	switch {
	case len(payload) == 33 && payload[32] == 0x01:
		compressed = true
		payload = payload[:32]
	case len(payload) != 32:
		str := fmt.Sprintf("WIF payload has invalid length %d", len(payload))
		return nil, makeError(ErrInvalidKey, str)
	}

	pub, err := pubkey.FromPrivateKey(payload)
	if err != nil {
		return nil, makeError(ErrInvalidKey, err.Error())
	}
	if compressed {
		return pub, nil
	}
	return pubkey.NewPublicKey(pub.X(), pub.Y(), false)
}

func parseKeyOrigin(s string) (*KeyOrigin, error) {
	parts := strings.Split(s, "/")
	fingerprint, err := hex.DecodeString(parts[0])
	if err != nil || len(fingerprint) != 4 {
		str := fmt.Sprintf("fingerprint %q is not 8 hex characters", parts[0])
		return nil, makeError(ErrInvalidKeyOrigin, str)
	}

	origin := &KeyOrigin{}
	copy(origin.Fingerprint[:], fingerprint)
	if origin.Path, err = parsePath(parts[1:]); err != nil {
		return nil, err
	}
	return origin, nil
}

// parsePath parses derivation steps, hardened ones marked with ' or h.
func parsePath(components []string) ([]uint32, error) {
	if len(components) == 0 {
		return nil, nil
	}

	path := make([]uint32, 0, len(components))
	for _, component := range components {
		var value uint32
		if strings.HasSuffix(component, "'") || strings.HasSuffix(component, "h") {
			value = hdkeychain.HardenedKeyStart
			component = component[:len(component)-1]
		}

		n, ok := new(big.Int).SetString(component, 10)
		max := uint64(math.MaxUint32 - value)
		if !ok || n.Sign() < 0 || !n.IsUint64() || n.Uint64() > max {
			str := fmt.Sprintf("invalid path component %q", component)
			return nil, makeError(ErrInvalidKeyOrigin, str)
		}
		path = append(path, value+uint32(n.Uint64()))
	}
	return path, nil
}

func sortKeys(keys []Key) []Key {
	sorted := append([]Key(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].PubKey.Serialize(),
			sorted[j].PubKey.Serialize()) < 0
	})
	return sorted
}
