package protocol

// EventType identifies the type of client navigation event.
type EventType uint8

const (
	EventClick      EventType = 0x01 // In-page click candidate
	EventHistoryPop EventType = 0x02 // Back/forward navigation
)

// Click modifier-key bits.
const (
	ModCtrl  uint8 = 0x01
	ModShift uint8 = 0x02
	ModAlt   uint8 = 0x04
	ModMeta  uint8 = 0x08
)

// Click anchor/state bits.
const (
	ClickHasAnchor uint8 = 0x01
	ClickDownload  uint8 = 0x02
	ClickExternal  uint8 = 0x04
	ClickPrevented uint8 = 0x08
)

// Hello is the handshake the client sends first: the document origin and
// the initial location.
type Hello struct {
	Origin string
	Path   string
	Hash   string
}

// Encode encodes the hello as a FrameHello payload.
func (h *Hello) Encode() []byte {
	buf := appendString(nil, h.Origin)
	buf = appendString(buf, h.Path)
	return appendString(buf, h.Hash)
}

// DecodeHello decodes a FrameHello payload.
func DecodeHello(payload []byte) (*Hello, error) {
	var h Hello
	var n int
	var err error
	if h.Origin, n, err = readString(payload); err != nil {
		return nil, err
	}
	payload = payload[n:]
	if h.Path, n, err = readString(payload); err != nil {
		return nil, err
	}
	payload = payload[n:]
	if h.Hash, _, err = readString(payload); err != nil {
		return nil, err
	}
	return &h, nil
}

// ClickEvent is a primary-button click candidate as observed by the thin
// client: the raw button, modifier state, and the resolved anchor target.
//
// Wire format: [EventClick][button][modifiers][flags][href][target], with
// href and target present only when ClickHasAnchor is set.
type ClickEvent struct {
	Button    uint8
	Modifiers uint8
	Flags     uint8
	Href      string
	Target    string
}

// Encode encodes the click as a FrameEvent payload.
func (e *ClickEvent) Encode() []byte {
	buf := []byte{byte(EventClick), e.Button, e.Modifiers, e.Flags}
	if e.Flags&ClickHasAnchor != 0 {
		buf = appendString(buf, e.Href)
		buf = appendString(buf, e.Target)
	}
	return buf
}

// HistoryPopEvent reports an externally raised history change; the client
// sends the location it landed on.
//
// Wire format: [EventHistoryPop][path][hash].
type HistoryPopEvent struct {
	Path string
	Hash string
}

// Encode encodes the pop as a FrameEvent payload.
func (e *HistoryPopEvent) Encode() []byte {
	buf := []byte{byte(EventHistoryPop)}
	buf = appendString(buf, e.Path)
	return appendString(buf, e.Hash)
}

// DecodeEvent decodes a FrameEvent payload into *ClickEvent or
// *HistoryPopEvent.
func DecodeEvent(payload []byte) (any, error) {
	if len(payload) < 1 {
		return nil, ErrTruncatedFrame
	}
	switch EventType(payload[0]) {
	case EventClick:
		return decodeClick(payload[1:])
	case EventHistoryPop:
		return decodeHistoryPop(payload[1:])
	default:
		return nil, ErrInvalidFrameType
	}
}

func decodeClick(payload []byte) (*ClickEvent, error) {
	if len(payload) < 3 {
		return nil, ErrTruncatedFrame
	}
	e := &ClickEvent{
		Button:    payload[0],
		Modifiers: payload[1],
		Flags:     payload[2],
	}
	payload = payload[3:]
	if e.Flags&ClickHasAnchor != 0 {
		var n int
		var err error
		if e.Href, n, err = readString(payload); err != nil {
			return nil, err
		}
		payload = payload[n:]
		if e.Target, _, err = readString(payload); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func decodeHistoryPop(payload []byte) (*HistoryPopEvent, error) {
	var e HistoryPopEvent
	var n int
	var err error
	if e.Path, n, err = readString(payload); err != nil {
		return nil, err
	}
	payload = payload[n:]
	if e.Hash, _, err = readString(payload); err != nil {
		return nil, err
	}
	return &e, nil
}
