package network

import (
	"encoding/binary"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// paramsConfig is the on-disk shape of a custom network definition.
type paramsConfig struct {
	Name         string `yaml:"name"`
	Alias        string `yaml:"alias"`
	PubKeyHash   *uint8 `yaml:"pubkeyhash"`
	PrivateKey   uint8  `yaml:"privatekey"`
	ScriptHash   *uint8 `yaml:"scripthash"`
	Bech32Prefix string `yaml:"bech32prefix"`
	XPubKey      uint32 `yaml:"xpubkey"`
	XPrivKey     uint32 `yaml:"xprivkey"`
	NetworkMagic uint32 `yaml:"networkMagic"`
	Port         uint16 `yaml:"port"`
}

type configFile struct {
	Networks []paramsConfig `yaml:"networks"`
}

func (c *paramsConfig) params() (*Params, error) {
	if c.PubKeyHash == nil || c.ScriptHash == nil {
		str := fmt.Sprintf("network %q must set both pubkeyhash and "+
			"scripthash", c.Name)
		return nil, makeError(ErrMalformedConfig, str)
	}
	p := &Params{
		Name:         c.Name,
		Alias:        c.Alias,
		Bech32:       c.Bech32Prefix,
		PubKeyHash:   *c.PubKeyHash,
		ScriptHash:   *c.ScriptHash,
		Wif:          c.PrivateKey,
		NetworkMagic: c.NetworkMagic,
		Port:         c.Port,
	}
	binary.BigEndian.PutUint32(p.HDPublicKey[:], c.XPubKey)
	binary.BigEndian.PutUint32(p.HDPrivateKey[:], c.XPrivKey)
	if err := checkParams(p); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadParams reads network definitions from a YAML document of the form
//
//	networks:
//	  - name: regtest
//	    pubkeyhash: 0x6f
//	    privatekey: 0xef
//	    scripthash: 0xc4
//	    bech32prefix: rrdd
//	    xpubkey: 0x043587cf
//	    xprivkey: 0x04358394
//	    networkMagic: 0xfabfb5da
//	    port: 18444
//
// The definitions are only parsed and checked; registering them is up to
// the caller.
func LoadParams(r io.Reader) ([]*Params, error) {
	var doc configFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, Error{
			Err:         ErrMalformedConfig,
			Description: fmt.Sprintf("unable to parse networks: %v", err),
		}
	}

	nets := make([]*Params, 0, len(doc.Networks))
	for i := range doc.Networks {
		p, err := doc.Networks[i].params()
		if err != nil {
			return nil, err
		}
		nets = append(nets, p)
	}
	return nets, nil
}

// RegisterFrom loads network definitions from r and adds them all to the
// registry.  Nothing is registered when any definition is invalid or
// collides.
func (r *Registry) RegisterFrom(rd io.Reader) ([]*Params, error) {
	nets, err := LoadParams(rd)
	if err != nil {
		return nil, err
	}
	for i, p := range nets {
		if err := r.Add(p); err != nil {
			for _, added := range nets[:i] {
				r.Remove(added.Name)
			}
			return nil, err
		}
	}
	return nets, nil
}
