package ksyms

const (
	uleb128ContinuationBit = 1 << 7
	uleb128BitsPerByte     = 7
)

// uleb128Max returns the largest value representable in byteWidth ULEB128
// bytes (no continuation on the last byte).
func uleb128Max(byteWidth int) int {
	return (1 << (byteWidth * uleb128BitsPerByte)) - 1
}

// toULEB128Byte extracts byte index byteIdx (0 = least significant) of
// number's 7-bit groups.
func toULEB128Byte(number, byteIdx int) byte {
	return byte((number >> (byteIdx * uleb128BitsPerByte)) & uleb128Max(1))
}

// encodeNameLength produces the 1-or-2-byte ULEB128 length prefix for a
// compressed name of the given length. A length over 2 ULEB128 bytes'
// capacity (16383) is a bound error.
func encodeNameLength(length int) ([]byte, error) {
	if length > uleb128Max(2) {
		return nil, ErrNameEncodingTooLong
	}
	if length <= uleb128Max(1) {
		return []byte{byte(length)}, nil
	}
	return []byte{
		uleb128ContinuationBit | toULEB128Byte(length, 0),
		toULEB128Byte(length, 1),
	}, nil
}

// encodeBigEndian24 packs index into 3 big-endian bytes, as used by the
// name-to-address permutation table (SYMBOL_INDICES).
func encodeBigEndian24(index int) [3]byte {
	return [3]byte{
		byte((index >> 16) & 0xFF),
		byte((index >> 8) & 0xFF),
		byte((index >> 0) & 0xFF),
	}
}
