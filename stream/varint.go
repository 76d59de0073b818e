package stream

// 7-bit varint encoding for length prefixes: seven payload bits per byte,
// high bit marks continuation, least significant group first, minimal length.

// maxUvarintLen is the longest encoding of a uint64.
const maxUvarintLen = 10

// AppendUvarint appends the 7-bit varint encoding of v to dst.
func AppendUvarint(dst []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// UvarintLen reports the encoded size of v in bytes.
func UvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
