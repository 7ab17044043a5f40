package protocol

import (
	"encoding/binary"

	errs "github.com/mercmobily/routify/internal/errors"
)

// Frame constants.
const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the maximum payload size (2^16 - 1 bytes).
	MaxPayloadSize = 65535

	// MaxStringLen caps length-prefixed strings well below the payload
	// limit; hrefs and origins never legitimately approach it.
	MaxStringLen = 4096
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameHello FrameType = 0x00 // Client → Server handshake
	FrameEvent FrameType = 0x01 // Client → Server navigation events
	FramePatch FrameType = 0x02 // Server → Client updates
	FrameError FrameType = 0x03 // Server → Client error report
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FrameEvent:
		return "Event"
	case FramePatch:
		return "Patch"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Frame errors.
var (
	ErrFrameTooLarge    = errs.New("E201")
	ErrTruncatedFrame   = errs.New("E202")
	ErrInvalidFrameType = errs.New("E203")
)

// Frame is a protocol frame: a 4-byte header (type, flags, big-endian
// payload length) followed by the payload.
type Frame struct {
	Type    FrameType
	Flags   uint8
	Payload []byte
}

// Encode encodes the frame to bytes including the header.
func (f *Frame) Encode() ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, FrameHeaderSize+len(f.Payload))
	buf[0] = byte(f.Type)
	buf[1] = f.Flags
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(f.Payload)))
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf, nil
}

// DecodeFrame decodes a frame from bytes, validating the header against the
// actual message length.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, ErrTruncatedFrame
	}
	ft := FrameType(data[0])
	if ft > FrameError {
		return nil, ErrInvalidFrameType
	}
	length := int(binary.BigEndian.Uint16(data[2:4]))
	if len(data)-FrameHeaderSize < length {
		return nil, ErrTruncatedFrame
	}
	return &Frame{
		Type:    ft,
		Flags:   data[1],
		Payload: data[FrameHeaderSize : FrameHeaderSize+length],
	}, nil
}
