package protocol

// maxVarintLen is the maximum number of bytes a varint can occupy.
const maxVarintLen = 10

// appendUvarint appends v in protobuf-style varint encoding: 7 bits of data
// per byte, MSB indicates continuation.
func appendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// readUvarint decodes an unsigned varint from buf.
// Returns (value, bytesRead). If bytesRead < 0, decoding failed:
//   - -1: buffer too short (incomplete varint)
//   - -2: varint overflow (more than 10 bytes)
func readUvarint(buf []byte) (uint64, int) {
	var v uint64
	var shift uint

	for i, b := range buf {
		if i >= maxVarintLen {
			return 0, -2
		}
		v |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return v, i + 1
		}
		shift += 7
	}
	return 0, -1
}

// appendString appends a length-prefixed string.
func appendString(buf []byte, s string) []byte {
	buf = appendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// readString decodes a length-prefixed string, enforcing MaxStringLen.
// Returns the string and the total bytes consumed.
func readString(buf []byte) (string, int, error) {
	length, n := readUvarint(buf)
	if n < 0 {
		return "", 0, ErrTruncatedFrame
	}
	if length > MaxStringLen {
		return "", 0, ErrFrameTooLarge
	}
	end := n + int(length)
	if end > len(buf) {
		return "", 0, ErrTruncatedFrame
	}
	return string(buf[n:end]), end, nil
}
