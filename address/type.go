package address

import "fmt"

// Type is the kind of output an address pays to.
type Type byte

// The zero Type is not an address type.  Passed as an expected type it
// matches any type.
const (
	PubKeyHash Type = iota + 1
	ScriptHash
	WitnessPubKeyHash
	WitnessScriptHash
	Taproot
)

var typeNames = map[Type]string{
	PubKeyHash:        "pubkeyhash",
	ScriptHash:        "scripthash",
	WitnessPubKeyHash: "witnesspubkeyhash",
	WitnessScriptHash: "witnessscripthash",
	Taproot:           "taproot",
}

// String returns the name used for the type in serialized objects.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Type (%d)", byte(t))
}

// ParseType returns the Type with the given name.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	str := fmt.Sprintf("unknown address type %q", name)
	return 0, makeError(ErrUnsupportedType, str)
}

func (t Type) valid() bool {
	_, ok := typeNames[t]
	return ok
}

// hashLen is the size of the hash an address of the type commits to.
func (t Type) hashLen() int {
	switch t {
	case WitnessScriptHash, Taproot:
		return 32
	default:
		return hash160Len
	}
}

// IsWitness reports whether the type is a segwit program.
func (t Type) IsWitness() bool {
	return t == WitnessPubKeyHash || t == WitnessScriptHash || t == Taproot
}

func (t Type) witnessVersion() byte {
	if t == Taproot {
		return 1
	}
	return 0
}

// typeForProgram maps a decoded witness program to its address type.
func typeForProgram(version byte, program []byte) (Type, bool) {
	switch {
	case version == 0 && len(program) == 20:
		return WitnessPubKeyHash, true
	case version == 0 && len(program) == 32:
		return WitnessScriptHash, true
	case version == 1 && len(program) == 32:
		return Taproot, true
	}
	return 0, false
}
