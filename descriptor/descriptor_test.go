package descriptor_test

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddcoin-project/go-rddcore/address"
	"github.com/reddcoin-project/go-rddcore/descriptor"
	"github.com/reddcoin-project/go-rddcore/network"
	"github.com/reddcoin-project/go-rddcore/pubkey"
)

const (
	key  = "0285e9737a74c30a873f74df05124f2aa6f53042c2fc0a130d6cbd7d16b944b004"
	keyA = "0272073bf0287c4469a2a011567361d42529cd1a72ab0d86aa104ecc89342ffeb0"
	keyB = "02738a516a78355db138e8119e58934864ce222c553a5407cf92b9c1527e03c1a2"
	keyC = "02da5798ed0c055e31339eb9b5cef0d3c0ccdec84a62e2e255eb5c006d4f3e7f5b"

	multiKeys  = "2," + keyA + "," + keyB + "," + keyC
	liveWSH    = "rdd1qukwqyzxcjdykr0cfxghwkrx9rkmdvapc08syez75q5ewg3j5umvse6knx7"
	livePKH    = "RhJ59XtQr6UmkLFkagiK935Z2mBALCEoFU"
	liveTR     = "rdd1pew2aqdmxm0d7hdfxnk4dyuv7qnnpgllt5mtr7lnhpejdmay5jfxswse5an"
	pubKeyHash = "5f2ea7d27612f17cc8e33d6c764fa5e0612bf807"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		desc string
		sum  string
	}{
		{"raw(deadbeef)", "89f8spxm"},
		{"addr(mkmZxiEcEd8ZqjQWVZuC6so5dFMKEFpN2j)", "02wpgw69"},
		{"wpkh(" + key + ")", "k2txwkwf"},
		{"wpkh([d34db33f/84'/0'/0']" + key + ")", "wm3z0w6z"},
	}
	for _, test := range tests {
		sum, err := descriptor.Checksum(test.desc)
		require.NoError(t, err)
		assert.Equal(t, test.sum, sum, test.desc)
	}

	_, err := descriptor.Checksum("wpkh(é)")
	assert.ErrorIs(t, err, descriptor.ErrMalformedDescriptor)
}

func TestParse(t *testing.T) {
	tests := []struct {
		desc string
		typ  string
		addr string
	}{
		{"pkh(" + key + ")#yt74uyq7", "pkh", livePKH},
		{"wpkh(" + key + ")#k2txwkwf", "wpkh",
			"rdd1qtuh205nkztchej8r84k8vna9upsjh7q83y3usu"},
		{"sh(wpkh(" + key + "))#6wjgz9e7", "sh", "3GNVVBik6S9Ux5ccS6ymmEeQELXGJdP8p8"},
		{"tr(" + key + ")#uv86draz", "tr", liveTR},
		{"tr(" + key[2:] + ")", "tr", liveTR},
		{"wsh(multi(" + multiKeys + "))#u8x24l2x", "wsh", liveWSH},
		{"wsh(sortedmulti(2," + keyC + "," + keyB + "," + keyA + "))#uccs4ezw",
			"wsh", liveWSH},
		{"sh(wsh(multi(" + multiKeys + ")))#6fqqavf6", "sh",
			"3PpK1bBqUmPK3Q6QPSUK7BQSZ1DMWL6aes"},
		{"sh(multi(" + multiKeys + "))#kz3gx5q6", "sh",
			"3FtqPRirhPvrf7mVUSkygyZ5UuoAYrTW3y"},
		{"addr(" + livePKH + ")#zc2x4z4p", "addr", livePKH},
		{"raw(76a914" + pubKeyHash + "88ac)", "raw", livePKH},
		{"  wpkh([d34db33f/84'/0'/0']" + key + ")#wm3z0w6z\n", "wpkh",
			"rdd1qtuh205nkztchej8r84k8vna9upsjh7q83y3usu"},
	}

	for _, test := range tests {
		d, err := descriptor.Parse(test.desc, &network.LiveNet)
		require.NoError(t, err, test.desc)
		assert.Equal(t, test.typ, d.Type())
		assert.Equal(t, "livenet", d.Network().Name)

		a, err := d.Address()
		require.NoError(t, err, test.desc)
		assert.Equal(t, test.addr, a.String(), test.desc)

		script, err := d.Script()
		require.NoError(t, err)
		want, err := a.OutputScript()
		require.NoError(t, err)
		assert.Equal(t, want, script)

		again, err := descriptor.Parse(d.String(), &network.LiveNet)
		require.NoError(t, err, d.String())
		assert.Equal(t, d.String(), again.String())
	}
}

func TestParseDefaultNetwork(t *testing.T) {
	d, err := descriptor.Parse("wpkh("+key+")", nil)
	require.NoError(t, err)
	assert.Equal(t, "livenet", d.Network().Name)

	d, err = descriptor.Parse("wpkh("+key+")", &network.TestNet)
	require.NoError(t, err)
	a, err := d.Address()
	require.NoError(t, err)
	assert.Equal(t, "trdd1qtuh205nkztchej8r84k8vna9upsjh7q8xkj4rk", a.String())
}

func TestString(t *testing.T) {
	d, err := descriptor.Parse("wpkh([d34db33f/84h/0h/0h]"+key+")", nil)
	require.NoError(t, err)
	assert.Equal(t, "wpkh([d34db33f/84'/0'/0']"+key+")#wm3z0w6z", d.String())

	keys := d.Keys()
	require.Len(t, keys, 1)
	require.NotNil(t, keys[0].Origin)
	assert.Equal(t, [4]byte{0xd3, 0x4d, 0xb3, 0x3f}, keys[0].Origin.Fingerprint)
	assert.Equal(t, []uint32{0x80000054, 0x80000000, 0x80000000}, keys[0].Origin.Path)

	// sortedmulti keeps the written key order.
	d, err = descriptor.Parse("wsh(sortedmulti(2,"+keyC+","+keyA+"))", nil)
	require.NoError(t, err)
	assert.Contains(t, d.String(), "sortedmulti(2,"+keyC+","+keyA+")")
	assert.Len(t, d.Keys(), 2)

	d, err = descriptor.Parse("tr("+key[2:]+")", nil)
	require.NoError(t, err)
	assert.Contains(t, d.String(), "tr("+key[2:]+")")
	assert.True(t, d.Keys()[0].XOnly)
}

func TestRawWithoutAddress(t *testing.T) {
	d, err := descriptor.Parse("raw(51)", nil)
	require.NoError(t, err)

	script, err := d.Script()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x51}, script)

	_, err = d.Address()
	assert.ErrorIs(t, err, descriptor.ErrNoAddress)
}

func TestWIF(t *testing.T) {
	// A Bitcoin mainnet WIF only parses for a network sharing its version.
	const wif = "L4rK1yDtCWekvXuE6oXD9jCYfFNV2cWRpVuPLBcCU2z8TrisoyY1"
	net := network.LiveNet
	net.Wif = 0x80

	d, err := descriptor.Parse("wpkh("+wif+")", &net)
	require.NoError(t, err)
	script, err := d.Script()
	require.NoError(t, err)
	assert.Equal(t, "00149a1c78a507689f6f54b847ad1cef1e614ee23f1e",
		hex.EncodeToString(script))
	assert.Equal(t, "wpkh(03a34b99f22c790c4e36b2b3c2c35a36db06226e41c692fc82b8b56ac1c540c5bd)",
		d.String()[:len(d.String())-9])

	_, err = descriptor.Parse("wpkh("+wif+")", &network.LiveNet)
	assert.ErrorIs(t, err, descriptor.ErrInvalidKey)

	priv := make([]byte, 32)
	priv[31] = 1
	pub, err := pubkey.FromPrivateKey(priv)
	require.NoError(t, err)

	compressed := base58.CheckEncode(append(priv, 0x01), network.LiveNet.Wif)
	d, err = descriptor.Parse("pkh("+compressed+")", nil)
	require.NoError(t, err)
	assert.True(t, pub.IsEqual(d.Keys()[0].PubKey))

	uncompressed := base58.CheckEncode(priv, network.LiveNet.Wif)
	d, err = descriptor.Parse("pkh("+uncompressed+")", nil)
	require.NoError(t, err)
	assert.False(t, d.Keys()[0].PubKey.Compressed())
	a, err := d.Address()
	require.NoError(t, err)
	want, err := address.FromPublicKey(d.Keys()[0].PubKey, nil, address.PubKeyHash)
	require.NoError(t, err)
	assert.True(t, want.Equal(a))

	_, err = descriptor.Parse("wpkh("+uncompressed+")", nil)
	assert.ErrorIs(t, err, descriptor.ErrInvalidKey)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		desc string
		err  error
	}{
		{"wpkh(" + key + ")#k2txwkwg", descriptor.ErrInvalidChecksum},
		{"wpkh(" + key + ")#k2txwkw", descriptor.ErrInvalidChecksum},
		{"wpkh(" + key + ")#k2tx#wkwf", descriptor.ErrMalformedDescriptor},
		{"wpkh" + key, descriptor.ErrMalformedDescriptor},
		{"multi(" + multiKeys + ")", descriptor.ErrUnsupportedExpression},
		{"wsh(wpkh(" + key + "))", descriptor.ErrUnsupportedExpression},
		{"sh(sh(wpkh(" + key + ")))", descriptor.ErrUnsupportedExpression},
		{"combo(" + key + ")", descriptor.ErrUnsupportedExpression},
		{"wsh(multi(4," + keyA + "," + keyB + "," + keyC + "))",
			descriptor.ErrMalformedDescriptor},
		{"wsh(multi(0," + keyA + "))", descriptor.ErrMalformedDescriptor},
		{"wsh(multi(x," + keyA + "))", descriptor.ErrMalformedDescriptor},
		{"wsh(multi(1))", descriptor.ErrMalformedDescriptor},
		{"wpkh(xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8/0/*)",
			descriptor.ErrUnsupportedKey},
		{"wpkh([d34db33/0']" + key + ")", descriptor.ErrInvalidKeyOrigin},
		{"wpkh([d34db33f/x']" + key + ")", descriptor.ErrInvalidKeyOrigin},
		{"wpkh([d34db33f" + key + ")", descriptor.ErrInvalidKeyOrigin},
		{"wpkh(" + key[:64] + ")", descriptor.ErrInvalidKey},
		{"wpkh(notakey)", descriptor.ErrInvalidKey},
		{"raw(zz)", descriptor.ErrMalformedDescriptor},
		{"raw()", descriptor.ErrMalformedDescriptor},
		{"addr(" + livePKH + "x)", address.ErrInvalidChecksum},
	}

	for _, test := range tests {
		_, err := descriptor.Parse(test.desc, &network.LiveNet)
		assert.ErrorIs(t, err, test.err, test.desc)
	}
}
