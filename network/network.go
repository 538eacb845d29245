package network

// Params represents prefixes and identifiers for each network.
// Values are immutable once registered: lookups hand out copies.
type Params struct {
	Name string
	// Optional second name the network can be looked up by.
	Alias string
	// Human-readable part for Bech32 encoded segwit addresses, as defined
	// in BIP 173.
	Bech32 string
	// BIP32 hierarchical deterministic extended key magics
	HDPublicKey  [4]byte
	HDPrivateKey [4]byte
	// Address encoding magic
	PubKeyHash byte
	ScriptHash byte
	// First byte of a WIF private key
	Wif byte
	// Message start bytes of the p2p protocol, big endian.
	NetworkMagic uint32
	// Default p2p port.
	Port uint16
}

// LiveNet defines the network parameters for the main Reddcoin network.
var LiveNet = Params{
	Name:         "livenet",
	Alias:        "mainnet",
	Bech32:       "rdd",
	HDPublicKey:  [4]byte{0x04, 0x88, 0xb2, 0x1e},
	HDPrivateKey: [4]byte{0x04, 0x88, 0xad, 0xe4},
	PubKeyHash:   0x3d,
	ScriptHash:   0x05,
	Wif:          0xbd,
	NetworkMagic: 0xfbc0b6db,
	Port:         45444,
}

// TestNet defines the network parameters for the test Reddcoin network.
var TestNet = Params{
	Name:         "testnet",
	Bech32:       "trdd",
	HDPublicKey:  [4]byte{0x04, 0x35, 0x87, 0xcf},
	HDPrivateKey: [4]byte{0x04, 0x35, 0x83, 0x94},
	PubKeyHash:   0x6f,
	ScriptHash:   0xc4,
	Wif:          0xef,
	NetworkMagic: 0xfec3bade,
	Port:         55444,
}

// AddrKind tells which address prefix of a network matched a lookup.
type AddrKind byte

const (
	NoAddrKind AddrKind = iota
	PubKeyHashAddr
	ScriptHashAddr
)

// String returns the address kind as a human-readable name.
func (k AddrKind) String() string {
	switch k {
	case PubKeyHashAddr:
		return "pubkeyhash"
	case ScriptHashAddr:
		return "scripthash"
	default:
		return "none"
	}
}

// Equal reports whether two parameter sets describe the same network.
func (p *Params) Equal(other *Params) bool {
	if p == nil || other == nil {
		return p == other
	}
	return *p == *other
}

func (p *Params) clone() *Params {
	c := *p
	return &c
}
