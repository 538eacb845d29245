package address_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddcoin-project/go-rddcore/address"
	"github.com/reddcoin-project/go-rddcore/network"
	"github.com/reddcoin-project/go-rddcore/pubkey"
)

const (
	pubKeyHex = "0285e9737a74c30a873f74df05124f2aa6f53042c2fc0a130d6cbd7d16b944b004"
	uncompHex = "0485e9737a74c30a873f74df05124f2aa6f53042c2fc0a130d6cbd7d16b944b004" +
		"833fef26c8be4c4823754869ff4e46755b85d851077771c220e2610496a29d98"
	pubKeyHash = "5f2ea7d27612f17cc8e33d6c764fa5e0612bf807"

	livePKH     = "RhJ59XtQr6UmkLFkagiK935Z2mBALCEoFU"
	liveSH      = "3GNVVBik6S9Ux5ccS6ymmEeQELXGJdP8p8"
	liveWPKH    = "rdd1qtuh205nkztchej8r84k8vna9upsjh7q83y3usu"
	liveTaproot = "rdd1pew2aqdmxm0d7hdfxnk4dyuv7qnnpgllt5mtr7lnhpejdmay5jfxswse5an"
	liveWSH     = "rdd1qukwqyzxcjdykr0cfxghwkrx9rkmdvapc08syez75q5ewg3j5umvse6knx7"
	testPKH     = "mpCENxnpM7eae1E5ofNFPJgtVz4KxGeZX4"
	testSH      = "2N7vhYvemhteq9sFA7EbePBdfSgjS8AjsTX"
	testWPKH    = "trdd1qtuh205nkztchej8r84k8vna9upsjh7q8xkj4rk"
	testTaproot = "trdd1pew2aqdmxm0d7hdfxnk4dyuv7qnnpgllt5mtr7lnhpejdmay5jfxs9la2zx"
	testWSH     = "trdd1qukwqyzxcjdykr0cfxghwkrx9rkmdvapc08syez75q5ewg3j5umvsj4jdet"
	customPKH   = "CR9Aex3uR9Brm2etmqio8u6bG7g2uF5ewo"
	customSH    = "HMCbwz9pwkN9aFVeHndvjdAwFzYHBCYBWZ"
	customWPKH  = "crdd1qtuh205nkztchej8r84k8vna9upsjh7q8w3qks0"
)

var multisigKeys = []string{
	"0272073bf0287c4469a2a011567361d42529cd1a72ab0d86aa104ecc89342ffeb0",
	"02738a516a78355db138e8119e58934864ce222c553a5407cf92b9c1527e03c1a2",
	"02da5798ed0c055e31339eb9b5cef0d3c0ccdec84a62e2e255eb5c006d4f3e7f5b",
}

var customNet = network.Params{
	Name:         "customnet",
	Bech32:       "crdd",
	PubKeyHash:   0x1c,
	ScriptHash:   0x28,
	Wif:          0x9c,
	NetworkMagic: 0xe7beb4d4,
	Port:         20001,
}

func h2b(s string) []byte {
	b, _ := hex.DecodeString(s)
	return b
}

func mustKey(t *testing.T, s string) *pubkey.PublicKey {
	key, err := pubkey.FromHex(s)
	require.NoError(t, err)
	return key
}

func mustKeys(t *testing.T) []*pubkey.PublicKey {
	keys := make([]*pubkey.PublicKey, 0, len(multisigKeys))
	for _, k := range multisigKeys {
		keys = append(keys, mustKey(t, k))
	}
	return keys
}

func customCodec(t *testing.T) *address.Codec {
	reg, err := network.NewRegistry(&network.LiveNet, &network.TestNet, &customNet)
	require.NoError(t, err)
	return address.NewCodec(reg)
}

func TestDecode(t *testing.T) {
	codec := customCodec(t)

	tests := []struct {
		addr string
		net  string
		typ  address.Type
		hash string
	}{
		{livePKH, "livenet", address.PubKeyHash, pubKeyHash},
		{liveSH, "livenet", address.ScriptHash, "a108fde2cdfa981f885297ffac82048db5c234aa"},
		{liveWPKH, "livenet", address.WitnessPubKeyHash, pubKeyHash},
		{liveWSH, "livenet", address.WitnessScriptHash,
			"e59c0208d8934961bf09322eeb0cc51db6d6743879e04c8bd40532e44654e6d9"},
		{liveTaproot, "livenet", address.Taproot,
			"cb95d03766dbdbebb5269daad2719e04e6147feba6d63f7e770e64ddf494924d"},
		{testPKH, "testnet", address.PubKeyHash, pubKeyHash},
		{testSH, "testnet", address.ScriptHash, "a108fde2cdfa981f885297ffac82048db5c234aa"},
		{testWPKH, "testnet", address.WitnessPubKeyHash, pubKeyHash},
		{testWSH, "testnet", address.WitnessScriptHash,
			"e59c0208d8934961bf09322eeb0cc51db6d6743879e04c8bd40532e44654e6d9"},
		{testTaproot, "testnet", address.Taproot,
			"cb95d03766dbdbebb5269daad2719e04e6147feba6d63f7e770e64ddf494924d"},
		{customPKH, "customnet", address.PubKeyHash, pubKeyHash},
		{customSH, "customnet", address.ScriptHash, "a108fde2cdfa981f885297ffac82048db5c234aa"},
		{customWPKH, "customnet", address.WitnessPubKeyHash, pubKeyHash},
		{"rdd1qs5pe03zchpmxeh3q0wulnzkekh5alcsvrlnfju", "livenet",
			address.WitnessPubKeyHash, "850397c458b8766cde207bb9f98ad9b5e9dfe20c"},
	}

	for _, test := range tests {
		t.Run(test.addr, func(t *testing.T) {
			a, err := codec.Decode(test.addr, nil, 0)
			require.NoError(t, err)
			assert.Equal(t, test.net, a.Network().Name)
			assert.Equal(t, test.typ, a.Type())
			assert.Equal(t, test.hash, hex.EncodeToString(a.Hash()))

			// Round trip.
			assert.Equal(t, test.addr, a.String())

			// Whitespace is ignored.
			padded, err := codec.Decode("  \t\n"+test.addr+" \r", nil, 0)
			require.NoError(t, err)
			assert.True(t, a.Equal(padded))

			// Expectations that match are accepted.
			_, err = codec.Decode(test.addr, a.Network(), test.typ)
			require.NoError(t, err)
		})
	}
}

func TestDecodeUppercaseBech32(t *testing.T) {
	a, err := address.Decode("RDD1QTUH205NKZTCHEJ8R84K8VNA9UPSJH7Q83Y3USU", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, liveWPKH, a.String())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		addr string
		kind address.ErrorKind
	}{
		{"empty", "  ", address.ErrUnrecognizedFormat},
		{"garbage", "not an address", address.ErrUnrecognizedFormat},
		{"base58 checksum", "RhJ59XtQr6UmkLFkagiK935Z2mBALCEoFV", address.ErrInvalidChecksum},
		{"base58 length", "2sLYzJzhg2UBBG3aFoCUPuWySKWNMT3kYtJX", address.ErrInvalidLength},
		{"unknown version byte", "19gH5uhqY6DKrtkU66PsZPUZdzTd11Y7ke", address.ErrUnrecognizedFormat},
		{"bech32 checksum", "rdd1qtuh205nkztchej8r84k8vna9upsjh7q83y3usq", address.ErrInvalidChecksum},
		{"v1 with bech32", "rdd1pew2aqdmxm0d7hdfxnk4dyuv7qnnpgllt5mtr7lnhpejdmay5jfxsmvfcc3",
			address.ErrWrongChecksumAlgorithmForVersion},
		{"v0 with bech32m", "rdd1qtuh205nkztchej8r84k8vna9upsjh7q8ycps47",
			address.ErrWrongChecksumAlgorithmForVersion},
		{"v2", "rdd1zqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqvnpql8",
			address.ErrUnsupportedWitnessVersion},
		{"v0 21 bytes", "rdd1qqqqsyqcyq5rqwzqfpg9scrgwpugpzysnzsjzr9dm",
			address.ErrProgramLengthInvalid},
		{"unregistered hrp", "bc1qtuh205nkztchej8r84k8vna9upsjh7q8dvy576", address.ErrUnrecognizedFormat},
	}

	for _, test := range tests {
		_, err := address.Decode(test.addr, nil, 0)
		assert.ErrorIs(t, err, test.kind, test.name)
		assert.False(t, address.IsValid(test.addr, nil, 0), test.name)
	}
}

func TestNetworkAndTypeMismatch(t *testing.T) {
	err := address.ValidationError(liveWPKH, &network.TestNet, 0)
	require.ErrorIs(t, err, address.ErrNetworkMismatch)
	assert.Equal(t, "Address has mismatched network type.", err.Error())

	err = address.ValidationError(liveWPKH, nil, address.WitnessScriptHash)
	require.ErrorIs(t, err, address.ErrTypeMismatch)
	assert.Equal(t, "Address has mismatched type.", err.Error())

	err = address.ValidationError(testPKH, &network.LiveNet, address.PubKeyHash)
	assert.ErrorIs(t, err, address.ErrNetworkMismatch)

	assert.NoError(t, address.ValidationError(liveWPKH, &network.LiveNet,
		address.WitnessPubKeyHash))
}

func TestChecksumSensitivity(t *testing.T) {
	const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	for _, addr := range []string{livePKH, liveSH, testPKH} {
		for i := 0; i < len(addr); i++ {
			pos := indexByte(base58Alphabet, addr[i])
			flipped := addr[:i] + string(base58Alphabet[(pos+1)%58]) + addr[i+1:]
			assert.False(t, address.IsValid(flipped, nil, 0), flipped)
		}
	}

	const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	for _, addr := range []string{liveWPKH, liveWSH, liveTaproot} {
		for i := len("rdd1"); i < len(addr); i++ {
			pos := indexByte(bech32Charset, addr[i])
			flipped := addr[:i] + string(bech32Charset[(pos+1)%32]) + addr[i+1:]
			assert.False(t, address.IsValid(flipped, nil, 0), flipped)
		}
	}
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func TestNewAddress(t *testing.T) {
	_, err := address.NewAddress(make([]byte, 32), &network.LiveNet, address.PubKeyHash)
	assert.ErrorIs(t, err, address.ErrInvalidLength)

	_, err = address.NewAddress(make([]byte, 20), &network.LiveNet, address.Taproot)
	assert.ErrorIs(t, err, address.ErrInvalidLength)

	_, err = address.NewAddress(make([]byte, 20), &network.LiveNet, address.Type(9))
	assert.ErrorIs(t, err, address.ErrUnsupportedType)

	_, err = address.NewAddress(make([]byte, 20), nil, address.PubKeyHash)
	assert.ErrorIs(t, err, address.ErrUnknownNetwork)

	hash := h2b(pubKeyHash)
	a, err := address.NewAddress(hash, &network.LiveNet, address.PubKeyHash)
	require.NoError(t, err)
	hash[0] ^= 0xff
	assert.Equal(t, pubKeyHash, hex.EncodeToString(a.Hash()))
}

func TestOutputScript(t *testing.T) {
	tests := []struct {
		addr   string
		script string
	}{
		{livePKH, "76a914" + pubKeyHash + "88ac"},
		{liveSH, "a914a108fde2cdfa981f885297ffac82048db5c234aa87"},
		{liveWPKH, "0014" + pubKeyHash},
		{liveWSH, "0020e59c0208d8934961bf09322eeb0cc51db6d6743879e04c8bd40532e44654e6d9"},
		{liveTaproot, "5120cb95d03766dbdbebb5269daad2719e04e6147feba6d63f7e770e64ddf494924d"},
	}

	for _, test := range tests {
		a, err := address.Decode(test.addr, nil, 0)
		require.NoError(t, err)
		script, err := a.OutputScript()
		require.NoError(t, err)
		assert.Equal(t, test.script, hex.EncodeToString(script), test.addr)

		// The script pays back to the same address.
		back, err := address.FromScript(script, a.Network())
		require.NoError(t, err)
		assert.True(t, a.Equal(back), test.addr)
	}
}

func TestFromBuffer(t *testing.T) {
	buf := append([]byte{0x3d}, h2b(pubKeyHash)...)
	a, err := address.FromBuffer(buf, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, livePKH, a.String())

	buf[0] = 0xc4
	a, err = address.FromBuffer(buf, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, address.ScriptHash, a.Type())
	assert.Equal(t, "testnet", a.Network().Name)

	_, err = address.FromBuffer(buf, &network.LiveNet, 0)
	assert.ErrorIs(t, err, address.ErrNetworkMismatch)

	_, err = address.FromBuffer(buf, nil, address.PubKeyHash)
	assert.ErrorIs(t, err, address.ErrTypeMismatch)

	_, err = address.FromBuffer(buf[:20], nil, 0)
	assert.ErrorIs(t, err, address.ErrInvalidLength)

	buf[0] = 0x00
	_, err = address.FromBuffer(buf, nil, 0)
	assert.ErrorIs(t, err, address.ErrUnrecognizedFormat)
}

func TestObject(t *testing.T) {
	a, err := address.Decode(testWPKH, nil, 0)
	require.NoError(t, err)

	obj := a.ToObject()
	assert.Equal(t, address.Object{
		Hash:    pubKeyHash,
		Type:    "witnesspubkeyhash",
		Network: "testnet",
	}, obj)

	back, err := address.FromObject(obj)
	require.NoError(t, err)
	assert.True(t, a.Equal(back))

	// The network defaults to livenet.
	obj.Network = ""
	def, err := address.FromObject(obj)
	require.NoError(t, err)
	assert.Equal(t, liveWPKH, def.String())

	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hash":"`+pubKeyHash+`","type":"witnesspubkeyhash","network":"testnet"}`,
		string(b))

	var decoded address.Address
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, a.Equal(&decoded))

	_, err = address.FromObject(address.Object{Hash: "zz", Type: "pubkeyhash"})
	assert.ErrorIs(t, err, address.ErrMalformedInput)

	_, err = address.FromObject(address.Object{Hash: pubKeyHash, Type: "p2pkh"})
	assert.ErrorIs(t, err, address.ErrUnsupportedType)

	_, err = address.FromObject(address.Object{Hash: pubKeyHash, Type: "pubkeyhash",
		Network: "nonet"})
	assert.ErrorIs(t, err, address.ErrUnknownNetwork)

	_, err = address.FromObject(address.Object{Hash: pubKeyHash, Type: "taproot"})
	assert.ErrorIs(t, err, address.ErrInvalidLength)
}

func TestEqual(t *testing.T) {
	a, err := address.Decode(livePKH, nil, 0)
	require.NoError(t, err)
	b, err := address.Decode(liveWPKH, nil, 0)
	require.NoError(t, err)
	c, err := address.NewAddress(h2b(pubKeyHash), &network.TestNet, address.PubKeyHash)
	require.NoError(t, err)
	d, err := address.NewAddress(h2b(pubKeyHash), &network.LiveNet, address.PubKeyHash)
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a.Equal(d))
	assert.False(t, a.Equal(nil))
}

func TestParseType(t *testing.T) {
	for _, typ := range []address.Type{address.PubKeyHash, address.ScriptHash,
		address.WitnessPubKeyHash, address.WitnessScriptHash, address.Taproot} {

		parsed, err := address.ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	assert.True(t, address.Taproot.IsWitness())
	assert.False(t, address.ScriptHash.IsWitness())
	assert.Equal(t, "Unknown Type (0)", address.Type(0).String())
}

// TestUnregisterKeepsAddresses checks that addresses hold their own copy of
// the network parameters.
func TestUnregisterKeepsAddresses(t *testing.T) {
	require.NoError(t, network.Register(&customNet))
	a, err := address.Decode(customWPKH, nil, 0)
	require.NoError(t, err)

	require.True(t, network.Unregister(customNet.Name))
	assert.Equal(t, customWPKH, a.String())
	assert.Equal(t, "customnet", a.Network().Name)

	assert.False(t, address.IsValid(customWPKH, nil, 0))
}

func TestCodecRegistry(t *testing.T) {
	reg, err := network.NewRegistry(&network.TestNet)
	require.NoError(t, err)
	codec := address.NewCodec(reg)
	assert.Same(t, reg, codec.Registry())
	assert.Same(t, network.DefaultRegistry(), address.DefaultCodec().Registry())

	assert.True(t, codec.IsValid(testPKH, nil, 0))
	assert.False(t, codec.IsValid(livePKH, nil, 0))

	obj := address.Object{Hash: pubKeyHash, Type: "pubkeyhash"}
	a, err := codec.FromObject(obj)
	require.NoError(t, err)
	assert.Equal(t, testPKH, a.String())
}
