package protocol

// ErrorReport is a server-to-client error notice, carrying the registry
// code so the client can surface a documented message.
//
// Wire format: [code][message].
type ErrorReport struct {
	Code    string
	Message string
}

// Encode encodes the report as a FrameError payload.
func (e *ErrorReport) Encode() []byte {
	buf := appendString(nil, e.Code)
	return appendString(buf, e.Message)
}

// DecodeError decodes a FrameError payload.
func DecodeError(payload []byte) (*ErrorReport, error) {
	var e ErrorReport
	var n int
	var err error
	if e.Code, n, err = readString(payload); err != nil {
		return nil, err
	}
	payload = payload[n:]
	if e.Message, _, err = readString(payload); err != nil {
		return nil, err
	}
	return &e, nil
}
