package mdt

import "fmt"

// The printable alphabet is LibDeflate's EncodeForPrint character set:
// values 0..63 map to a-z, A-Z, 0-9, '(' and ')'. Every character the
// addon's decoder accepts, nothing else.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789()"

// sixBitValue maps a character back to its 6-bit value; -1 marks characters
// outside the alphabet.
var sixBitValue = func() [256]int8 {
	var m [256]int8
	for i := range m {
		m[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = int8(i)
	}
	return m
}()

// encodeForPrint maps bytes onto the printable alphabet. Groups of three
// bytes become a 24-bit little-endian value emitted as four characters,
// low 6 bits first. A one-byte remainder emits two characters, a two-byte
// remainder three, so the mapping is unambiguous in both directions.
func encodeForPrint(data []byte) string {
	out := make([]byte, 0, (len(data)*4+2)/3)
	i := 0
	for ; i+3 <= len(data); i += 3 {
		x := int(data[i]) | int(data[i+1])<<8 | int(data[i+2])<<16
		out = append(out,
			alphabet[x&0x3f],
			alphabet[(x>>6)&0x3f],
			alphabet[(x>>12)&0x3f],
			alphabet[(x>>18)&0x3f],
		)
	}
	switch len(data) - i {
	case 1:
		x := int(data[i])
		out = append(out, alphabet[x&0x3f], alphabet[x>>6])
	case 2:
		x := int(data[i]) | int(data[i+1])<<8
		out = append(out, alphabet[x&0x3f], alphabet[(x>>6)&0x3f], alphabet[x>>12])
	}
	return string(out)
}

// decodeForPrint inverts encodeForPrint. It rejects characters outside the
// alphabet and lengths no encoder output can have (4k+1 characters).
func decodeForPrint(s string) ([]byte, error) {
	if len(s)%4 == 1 {
		return nil, fmt.Errorf("%w: truncated printable payload (%d chars)", ErrDecode, len(s))
	}
	vals := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		v := sixBitValue[s[i]]
		if v < 0 {
			return nil, fmt.Errorf("%w: character %q outside printable alphabet at offset %d", ErrDecode, s[i], i)
		}
		vals[i] = int(v)
	}

	out := make([]byte, 0, len(s)*3/4)
	i := 0
	for ; i+4 <= len(vals); i += 4 {
		x := vals[i] | vals[i+1]<<6 | vals[i+2]<<12 | vals[i+3]<<18
		out = append(out, byte(x), byte(x>>8), byte(x>>16))
	}
	switch len(vals) - i {
	case 2:
		x := vals[i] | vals[i+1]<<6
		out = append(out, byte(x))
	case 3:
		x := vals[i] | vals[i+1]<<6 | vals[i+2]<<12
		out = append(out, byte(x), byte(x>>8))
	}
	return out, nil
}
