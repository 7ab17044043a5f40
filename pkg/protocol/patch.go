package protocol

// PatchType identifies the type of server update.
type PatchType uint8

const (
	PatchPush   PatchType = 0x01 // history.pushState the given location
	PatchActive PatchType = 0x02 // toggle a component's active state
)

// PushPatch instructs the client to push a new location onto the session
// history, without raising a popstate of its own.
//
// Wire format: [PatchPush][path][hash].
type PushPatch struct {
	Path string
	Hash string
}

// Encode encodes the push as a FramePatch payload.
func (p *PushPatch) Encode() []byte {
	buf := []byte{byte(PatchPush)}
	buf = appendString(buf, p.Path)
	return appendString(buf, p.Hash)
}

// ActivePatch mirrors a component's active flag to the client, keyed by the
// component identifier the application registered it under.
//
// Wire format: [PatchActive][active][component-id].
type ActivePatch struct {
	ComponentID string
	Active      bool
}

// Encode encodes the toggle as a FramePatch payload.
func (p *ActivePatch) Encode() []byte {
	active := byte(0)
	if p.Active {
		active = 1
	}
	buf := []byte{byte(PatchActive), active}
	return appendString(buf, p.ComponentID)
}

// DecodePatch decodes a FramePatch payload into *PushPatch or *ActivePatch.
func DecodePatch(payload []byte) (any, error) {
	if len(payload) < 1 {
		return nil, ErrTruncatedFrame
	}
	switch PatchType(payload[0]) {
	case PatchPush:
		var p PushPatch
		var n int
		var err error
		rest := payload[1:]
		if p.Path, n, err = readString(rest); err != nil {
			return nil, err
		}
		rest = rest[n:]
		if p.Hash, _, err = readString(rest); err != nil {
			return nil, err
		}
		return &p, nil
	case PatchActive:
		if len(payload) < 2 {
			return nil, ErrTruncatedFrame
		}
		p := ActivePatch{Active: payload[1] != 0}
		var err error
		if p.ComponentID, _, err = readString(payload[2:]); err != nil {
			return nil, err
		}
		return &p, nil
	default:
		return nil, ErrInvalidFrameType
	}
}
