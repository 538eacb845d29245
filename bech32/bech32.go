package bech32

import (
	"fmt"
	"strings"
)

// Encoding selects the checksum constant of a bech32 string.
type Encoding uint32

const (
	// Bech32 is the BIP 173 checksum, mandated for witness version 0.
	Bech32 Encoding = 1
	// Bech32m is the BIP 350 checksum, mandated for witness versions 1+.
	Bech32m Encoding = 0x2bc830a3
)

// String returns the name of the encoding.
func (e Encoding) String() string {
	switch e {
	case Bech32:
		return "bech32"
	case Bech32m:
		return "bech32m"
	default:
		return fmt.Sprintf("Encoding(0x%x)", uint32(e))
	}
}

// EncodingForVersion returns the checksum encoding a segwit program of the
// given witness version must use.
func EncodingForVersion(version byte) (Encoding, error) {
	switch {
	case version == 0:
		return Bech32, nil
	case version <= maxWitnessVersion:
		return Bech32m, nil
	default:
		str := fmt.Sprintf("invalid witness version: %d", version)
		return 0, makeError(ErrInvalidWitnessVersion, str)
	}
}

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

var gen = []uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

const (
	checksumLen = 6

	// The maximum allowed length for a bech32 string is 90. It must also
	// be at least 8 characters, since it needs a non-empty HRP, a
	// separator, and a 6 character checksum.
	minStringLen = 8
	maxStringLen = 90
)

// DecodeGeneric decodes a bech32 or bech32m encoded string, returning the
// human-readable part, the data part excluding the checksum and the
// encoding whose checksum constant validated the string.
func DecodeGeneric(bech string) (string, []byte, Encoding, error) {
	if len(bech) < minStringLen || len(bech) > maxStringLen {
		str := fmt.Sprintf("invalid bech32 string length %d", len(bech))
		return "", nil, 0, makeError(ErrInvalidLength, str)
	}
	// Only ASCII characters between 33 and 126 are allowed.
	for i := 0; i < len(bech); i++ {
		if bech[i] < 33 || bech[i] > 126 {
			str := fmt.Sprintf("invalid character in string: '%c'", bech[i])
			return "", nil, 0, makeError(ErrInvalidCharacter, str)
		}
	}

	// The characters must be either all lowercase or all uppercase.
	lower := strings.ToLower(bech)
	upper := strings.ToUpper(bech)
	if bech != lower && bech != upper {
		return "", nil, 0, makeError(ErrMixedCase,
			"string not all lowercase or all uppercase")
	}

	// We'll work with the lowercase string from now on.
	bech = lower

	// The string is invalid if the last '1' is non-existent, it is the
	// first character of the string (no human-readable part) or one of the
	// last 6 characters of the string (since checksum cannot contain '1').
	one := strings.LastIndexByte(bech, '1')
	if one < 1 || one+checksumLen+1 > len(bech) {
		str := fmt.Sprintf("invalid index of 1: %d", one)
		return "", nil, 0, makeError(ErrInvalidSeparatorIndex, str)
	}

	// The human-readable part is everything before the last '1'.
	hrp := bech[:one]
	data := bech[one+1:]

	// Each character corresponds to the byte with value of the index in
	// 'charset'.
	decoded, err := toBytes(data)
	if err != nil {
		return "", nil, 0, err
	}

	var enc Encoding
	switch polymod(hrp, decoded) {
	case uint32(Bech32):
		enc = Bech32
	case uint32(Bech32m):
		enc = Bech32m
	default:
		expected, _ := toChars(createChecksum(hrp,
			decoded[:len(decoded)-checksumLen], Bech32))
		str := fmt.Sprintf("invalid checksum (expected bech32 %v, got %v)",
			expected, data[len(data)-checksumLen:])
		return "", nil, 0, makeError(ErrInvalidChecksum, str)
	}

	// We exclude the last 6 bytes, which is the checksum.
	return hrp, decoded[:len(decoded)-checksumLen], enc, nil
}

// Encode encodes a byte slice into a bech32 string with the human-readable
// part hrp and the checksum of the given encoding. Note that the bytes must
// each encode 5 bits (base32).
func Encode(hrp string, data []byte, enc Encoding) (string, error) {
	if enc != Bech32 && enc != Bech32m {
		return "", makeError(ErrInvalidEncoding,
			fmt.Sprintf("unknown encoding %v", enc))
	}
	hrp = strings.ToLower(hrp)

	// Calculate the checksum of the data and append it at the end.
	checksum := createChecksum(hrp, data, enc)
	combined := make([]byte, 0, len(data)+checksumLen)
	combined = append(combined, data...)
	combined = append(combined, checksum...)

	// The resulting bech32 string is the concatenation of the hrp, the
	// separator 1, data and checksum. Everything after the separator is
	// represented using the specified charset.
	dataChars, err := toChars(combined)
	if err != nil {
		return "", err
	}
	return hrp + "1" + dataChars, nil
}

// toBytes converts each character in the string 'chars' to the value of the
// index of the corresponding character in 'charset'.
func toBytes(chars string) ([]byte, error) {
	decoded := make([]byte, 0, len(chars))
	for i := 0; i < len(chars); i++ {
		index := strings.IndexByte(charset, chars[i])
		if index < 0 {
			str := fmt.Sprintf("invalid character not part of charset: %q",
				chars[i])
			return nil, makeError(ErrInvalidCharacter, str)
		}
		decoded = append(decoded, byte(index))
	}
	return decoded, nil
}

// toChars converts the byte slice 'data' to a string where each byte in 'data'
// encodes the index of a character in 'charset'.
func toChars(data []byte) (string, error) {
	result := make([]byte, 0, len(data))
	for _, b := range data {
		if int(b) >= len(charset) {
			str := fmt.Sprintf("invalid data byte: %v", b)
			return "", makeError(ErrInvalidDataByte, str)
		}
		result = append(result, charset[b])
	}
	return string(result), nil
}

// ConvertBits converts a byte slice where each byte is encoding fromBits bits,
// to a byte slice where each byte is encoding toBits bits.
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, makeError(ErrInvalidBitGroups,
			"only bit groups between 1 and 8 allowed")
	}

	// The final bytes, each byte encoding toBits bits.
	var regrouped []byte

	// Keep track of the next byte we create and how many bits we have
	// added to it out of the toBits goal.
	nextByte := byte(0)
	filledBits := uint8(0)

	for _, b := range data {

		// Discard unused bits.
		b = b << (8 - fromBits)

		// How many bits remaining to extract from the input data.
		remFromBits := fromBits
		for remFromBits > 0 {
			// How many bits remaining to be added to the next byte.
			remToBits := toBits - filledBits

			// The number of bytes to next extract is the minimum of
			// remFromBits and remToBits.
			toExtract := remFromBits
			if remToBits < toExtract {
				toExtract = remToBits
			}

			// Add the next bits to nextByte, shifting the already
			// added bits to the left.
			nextByte = (nextByte << toExtract) | (b >> (8 - toExtract))

			// Discard the bits we just extracted and get ready for
			// next iteration.
			b = b << toExtract
			remFromBits -= toExtract
			filledBits += toExtract

			// If the nextByte is completely filled, we add it to
			// our regrouped bytes and start on the next byte.
			if filledBits == toBits {
				regrouped = append(regrouped, nextByte)
				filledBits = 0
				nextByte = 0
			}
		}
	}

	// We pad any unfinished group if specified.
	if pad && filledBits > 0 {
		nextByte = nextByte << (toBits - filledBits)
		regrouped = append(regrouped, nextByte)
		filledBits = 0
		nextByte = 0
	}

	// Any incomplete group must be <= 4 bits, and all zeroes.
	if filledBits > 0 && (filledBits > 4 || nextByte != 0) {
		return nil, makeError(ErrInvalidPadding, "invalid incomplete group")
	}

	return regrouped, nil
}

// For more details on the checksum calculation, please refer to BIP 173.
func createChecksum(hrp string, data []byte, enc Encoding) []byte {
	values := make([]byte, 0, len(data)+checksumLen)
	values = append(values, data...)
	values = append(values, make([]byte, checksumLen)...)
	mod := polymod(hrp, values) ^ uint32(enc)
	res := make([]byte, checksumLen)
	for i := 0; i < checksumLen; i++ {
		res[i] = byte((mod >> uint(5*(checksumLen-1-i))) & 31)
	}
	return res
}

// polymod computes the BCH checksum over the expanded hrp followed by the
// 5-bit values.  For more details please refer to BIP 173.
func polymod(hrp string, values []byte) uint32 {
	chk := uint32(1)
	step := func(v byte) {
		b := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	for i := 0; i < len(hrp); i++ {
		step(hrp[i] >> 5)
	}
	step(0)
	for i := 0; i < len(hrp); i++ {
		step(hrp[i] & 31)
	}
	for _, v := range values {
		step(v)
	}
	return chk
}
