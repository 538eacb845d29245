package network

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type addrEntry struct {
	params *Params
	kind   AddrKind
}

// Registry is a table of network parameters indexed by name, bech32 human
// readable part, address prefix byte and network magic.  Every index is
// injective: two registered networks never share a key, which keeps address
// decoding unambiguous.  A Registry is safe for concurrent use.
type Registry struct {
	mtx         sync.RWMutex
	byName      map[string]*Params
	byBech32    map[string]*Params
	byAddrID    map[byte]addrEntry
	byMagic     map[uint32]*Params
	defaultName string
}

// NewRegistry returns a registry holding the given networks.  The first one
// becomes the default network.
func NewRegistry(params ...*Params) (*Registry, error) {
	r := &Registry{
		byName:   make(map[string]*Params),
		byBech32: make(map[string]*Params),
		byAddrID: make(map[byte]addrEntry),
		byMagic:  make(map[uint32]*Params),
	}
	for _, p := range params {
		if err := r.Add(p); err != nil {
			return nil, err
		}
	}
	if len(params) > 0 {
		r.defaultName = params[0].Name
	}
	return r, nil
}

func checkParams(p *Params) error {
	if p == nil {
		return makeError(ErrInvalidParams, "network params can't be nil")
	}
	if p.Name == "" {
		return makeError(ErrInvalidParams, "network name can't be empty")
	}
	if p.Bech32 == "" {
		str := fmt.Sprintf("network %q has no bech32 prefix", p.Name)
		return makeError(ErrInvalidParams, str)
	}
	if p.PubKeyHash == p.ScriptHash {
		str := fmt.Sprintf("network %q uses prefix 0x%02x for both "+
			"pubkeyhash and scripthash", p.Name, p.PubKeyHash)
		return makeError(ErrInvalidParams, str)
	}
	return nil
}

// Add registers a copy of p.  It fails with ErrDuplicateNetwork when any of
// the indexed fields of p is already taken by a registered network.
func (r *Registry) Add(p *Params) error {
	if err := checkParams(p); err != nil {
		return err
	}

	entry := p.clone()
	entry.Bech32 = strings.ToLower(entry.Bech32)

	r.mtx.Lock()
	defer r.mtx.Unlock()

	dup := func(what string, owner *Params) error {
		str := fmt.Sprintf("network %q: %s already used by network %q",
			entry.Name, what, owner.Name)
		return makeError(ErrDuplicateNetwork, str)
	}
	if owner, ok := r.byName[entry.Name]; ok {
		return dup("name", owner)
	}
	if entry.Alias != "" {
		if owner, ok := r.byName[entry.Alias]; ok {
			return dup("alias", owner)
		}
	}
	if owner, ok := r.byBech32[entry.Bech32]; ok {
		return dup("bech32 prefix "+entry.Bech32, owner)
	}
	for _, id := range []byte{entry.PubKeyHash, entry.ScriptHash} {
		if e, ok := r.byAddrID[id]; ok {
			return dup(fmt.Sprintf("address prefix 0x%02x", id), e.params)
		}
	}
	if entry.NetworkMagic != 0 {
		if owner, ok := r.byMagic[entry.NetworkMagic]; ok {
			return dup(fmt.Sprintf("magic 0x%08x", entry.NetworkMagic), owner)
		}
	}

	r.byName[entry.Name] = entry
	if entry.Alias != "" {
		r.byName[entry.Alias] = entry
	}
	r.byBech32[entry.Bech32] = entry
	r.byAddrID[entry.PubKeyHash] = addrEntry{entry, PubKeyHashAddr}
	r.byAddrID[entry.ScriptHash] = addrEntry{entry, ScriptHashAddr}
	if entry.NetworkMagic != 0 {
		r.byMagic[entry.NetworkMagic] = entry
	}
	if r.defaultName == "" {
		r.defaultName = entry.Name
	}

	log.Debugf("Registered network %s (bech32 %s, pubkeyhash 0x%02x, "+
		"scripthash 0x%02x)", entry.Name, entry.Bech32, entry.PubKeyHash,
		entry.ScriptHash)
	return nil
}

// Remove unregisters the network with the given name or alias and reports
// whether it was registered.  Addresses already built for the network keep
// their own copy of its parameters.
func (r *Registry) Remove(name string) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	entry, ok := r.byName[name]
	if !ok {
		return false
	}
	delete(r.byName, entry.Name)
	if entry.Alias != "" {
		delete(r.byName, entry.Alias)
	}
	delete(r.byBech32, entry.Bech32)
	delete(r.byAddrID, entry.PubKeyHash)
	delete(r.byAddrID, entry.ScriptHash)
	if entry.NetworkMagic != 0 {
		delete(r.byMagic, entry.NetworkMagic)
	}

	log.Debugf("Removed network %s", entry.Name)
	return true
}

// ByName returns the network registered under name or alias, or nil.
func (r *Registry) ByName(name string) *Params {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if p, ok := r.byName[name]; ok {
		return p.clone()
	}
	return nil
}

// ByBech32 returns the network using the given human-readable part, or nil.
func (r *Registry) ByBech32(hrp string) *Params {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if p, ok := r.byBech32[strings.ToLower(hrp)]; ok {
		return p.clone()
	}
	return nil
}

// ByMagic returns the network with the given message start bytes, or nil.
func (r *Registry) ByMagic(magic uint32) *Params {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if p, ok := r.byMagic[magic]; ok {
		return p.clone()
	}
	return nil
}

// ByAddrID returns the network owning the given base58 version byte along
// with the kind of address the byte denotes.
func (r *Registry) ByAddrID(id byte) (*Params, AddrKind) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if e, ok := r.byAddrID[id]; ok {
		return e.params.clone(), e.kind
	}
	return nil, NoAddrKind
}

// Get looks a network up by name or alias (string), magic (uint32) or
// address prefix (byte).  Untyped integer keys that fit in a byte are
// treated as address prefixes, larger ones as magics.
func (r *Registry) Get(key interface{}) *Params {
	switch k := key.(type) {
	case string:
		return r.ByName(k)
	case *Params:
		if k == nil {
			return nil
		}
		return r.ByName(k.Name)
	case uint32:
		return r.ByMagic(k)
	case byte:
		p, _ := r.ByAddrID(k)
		return p
	case int:
		if k >= 0 && k <= 0xff {
			p, _ := r.ByAddrID(byte(k))
			return p
		}
		if k > 0 && int64(k) <= 0xffffffff {
			return r.ByMagic(uint32(k))
		}
	}
	return nil
}

// All returns a snapshot of the registered networks sorted by name.
func (r *Registry) All() []*Params {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	nets := make([]*Params, 0, len(r.byBech32))
	for _, p := range r.byBech32 {
		nets = append(nets, p.clone())
	}
	sort.Slice(nets, func(i, j int) bool {
		return nets[i].Name < nets[j].Name
	})
	return nets
}

// Default returns the network used when none is specified, or nil when the
// designated default has been removed.
func (r *Registry) Default() *Params {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if p, ok := r.byName[r.defaultName]; ok {
		return p.clone()
	}
	return nil
}

// SetDefault designates the registered network name as the default one.
func (r *Registry) SetDefault(name string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	p, ok := r.byName[name]
	if !ok {
		str := fmt.Sprintf("network %q is not registered", name)
		return makeError(ErrUnknownNetwork, str)
	}
	r.defaultName = p.Name
	return nil
}

var defaultRegistry = mustNewRegistry(&LiveNet, &TestNet)

func mustNewRegistry(params ...*Params) *Registry {
	r, err := NewRegistry(params...)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in network params: %v", err))
	}
	return r
}

// DefaultRegistry returns the process-wide registry holding livenet and
// testnet at start-up.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds p to the default registry.
func Register(p *Params) error {
	return defaultRegistry.Add(p)
}

// Unregister removes the named network from the default registry.
func Unregister(name string) bool {
	return defaultRegistry.Remove(name)
}

// Get looks key up in the default registry.  See Registry.Get.
func Get(key interface{}) *Params {
	return defaultRegistry.Get(key)
}
