package descriptor

import (
	"fmt"
	"strings"
)

const (
	inputCharset = "0123456789()[],'/*abcdefgh@:$%{}" +
		"IJKLMNOPQRSTUVWXYZ&+-.;<=>?!^_|~" +
		"ijklmnopqrstuvwxyzABCDEFGH`#\"\\ "
	checksumCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	checksumLen     = 8
)

var checksumGen = [5]uint64{
	0xf5dee51989, 0xa9fdca3312, 0x1bab10e32d, 0x3706b1677a, 0x644d626ffd,
}

func polymod(c uint64, val int) uint64 {
	c0 := c >> 35
	c = (c&0x7ffffffff)<<5 ^ uint64(val)
	for i := 0; i < 5; i++ {
		if (c0>>uint(i))&1 != 0 {
			c ^= checksumGen[i]
		}
	}
	return c
}

// Checksum returns the 8 character checksum of a descriptor without its
// #suffix.
func Checksum(desc string) (string, error) {
	c := uint64(1)
	cls, clsCount := 0, 0
	for i, r := range desc {
		pos := strings.IndexRune(inputCharset, r)
		if pos < 0 {
			str := fmt.Sprintf("invalid character %q at position %d", r, i)
			return "", makeError(ErrMalformedDescriptor, str)
		}
		// Symbol within its group, then the group itself once three
		// have been collected.
		c = polymod(c, pos&31)
		cls = cls*3 + pos>>5
		if clsCount++; clsCount == 3 {
			c = polymod(c, cls)
			cls, clsCount = 0, 0
		}
	}
	if clsCount > 0 {
		c = polymod(c, cls)
	}
	for i := 0; i < checksumLen; i++ {
		c = polymod(c, 0)
	}
	c ^= 1

	var sb strings.Builder
	for i := 0; i < checksumLen; i++ {
		sb.WriteByte(checksumCharset[(c>>(5*(7-uint(i))))&31])
	}
	return sb.String(), nil
}

// trimChecksum splits off and verifies an optional #checksum suffix.
func trimChecksum(desc string) (string, error) {
	parts := strings.Split(desc, "#")
	switch len(parts) {
	case 1:
		return desc, nil
	case 2:
	default:
		return "", makeError(ErrMalformedDescriptor,
			"descriptor should contain at most one # symbol")
	}

	body, sum := parts[0], parts[1]
	if len(sum) != checksumLen {
		str := fmt.Sprintf("checksum must be %d characters, got %d",
			checksumLen, len(sum))
		return "", makeError(ErrInvalidChecksum, str)
	}
	want, err := Checksum(body)
	if err != nil {
		return "", err
	}
	if sum != want {
		str := fmt.Sprintf("checksum %s does not match, expected %s", sum, want)
		return "", makeError(ErrInvalidChecksum, str)
	}
	return body, nil
}
