package bech32

import "fmt"

const (
	maxWitnessVersion = 16

	minProgramLen = 2
	maxProgramLen = 40

	// Witness program sizes recognized by DecodeSegWit.
	WitnessV0PubKeyHashLen = 20
	WitnessV0ScriptHashLen = 32
	TaprootOutputKeyLen    = 32
)

// SegWit is a decoded segwit address: the network prefix, the witness
// version and program, and the checksum encoding it was found with.
type SegWit struct {
	HRP      string
	Version  byte
	Program  []byte
	Encoding Encoding
}

// EncodeSegWit encodes a witness program as hrp + '1' + version + program,
// checksummed with enc.  The version/encoding pairing is deliberately not
// enforced here so that callers control the checksum they produce.
func EncodeSegWit(hrp string, version byte, program []byte, enc Encoding) (string, error) {
	if version > maxWitnessVersion {
		str := fmt.Sprintf("invalid witness version: %d", version)
		return "", makeError(ErrInvalidWitnessVersion, str)
	}
	if len(program) < minProgramLen || len(program) > maxProgramLen {
		str := fmt.Sprintf("invalid witness program length %d", len(program))
		return "", makeError(ErrProgramLengthInvalid, str)
	}

	converted, err := ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}
	data := make([]byte, 0, len(converted)+1)
	data = append(data, version)
	data = append(data, converted...)
	return Encode(hrp, data, enc)
}

// Encode is a convenience for EncodeSegWit using the encoding mandated by
// the witness version.
func (s *SegWit) Encode() (string, error) {
	enc, err := EncodingForVersion(s.Version)
	if err != nil {
		return "", err
	}
	return EncodeSegWit(s.HRP, s.Version, s.Program, enc)
}

// DecodeSegWit decodes a segwit address.  Only witness versions 0 and 1 are
// recognized; version 0 must carry a bech32 checksum and a 20 or 32 byte
// program, version 1 a bech32m checksum and a 32 byte program.
func DecodeSegWit(addr string) (*SegWit, error) {
	hrp, data, enc, err := DecodeGeneric(addr)
	if err != nil {
		return nil, err
	}
	if len(data) < 1 {
		return nil, makeError(ErrInvalidLength, "no witness version")
	}

	version := data[0]
	if version > 1 {
		str := fmt.Sprintf("unsupported witness version: %d", version)
		return nil, makeError(ErrUnsupportedWitnessVersion, str)
	}

	want, _ := EncodingForVersion(version)
	if enc != want {
		str := fmt.Sprintf("witness version %d requires %v checksum, got %v",
			version, want, enc)
		return nil, makeError(ErrWrongEncodingForVersion, str)
	}

	program, err := ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, err
	}

	switch {
	case version == 0 && (len(program) == WitnessV0PubKeyHashLen ||
		len(program) == WitnessV0ScriptHashLen):
	case version == 1 && len(program) == TaprootOutputKeyLen:
	default:
		str := fmt.Sprintf("invalid program length %d for witness "+
			"version %d", len(program), version)
		return nil, makeError(ErrProgramLengthInvalid, str)
	}

	return &SegWit{
		HRP:      hrp,
		Version:  version,
		Program:  program,
		Encoding: enc,
	}, nil
}
