package bridge

import (
	"net/http"
	"time"

	"github.com/mercmobily/routify/pkg/protocol"
)

// Config holds the WebSocket bridge settings.
type Config struct {
	// ReadTimeout is the maximum idle time between client messages. Pings
	// from the server count, since the client answers them with pongs.
	ReadTimeout time.Duration

	// WriteTimeout bounds every outgoing write.
	WriteTimeout time.Duration

	// PingInterval is how often the server pings the client.
	PingInterval time.Duration

	// MaxMessageSize caps incoming WebSocket messages.
	MaxMessageSize int64

	// AllowedOrigins restricts the origins a client may announce in its
	// handshake. Empty allows any origin.
	AllowedOrigins []string

	// CheckOrigin is the upgrade-time origin check passed to the WebSocket
	// upgrader. The default allows all; the handshake-level AllowedOrigins
	// check still applies.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns the default bridge configuration.
func DefaultConfig() *Config {
	return &Config{
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: protocol.FrameHeaderSize + protocol.MaxPayloadSize,
		CheckOrigin:    func(*http.Request) bool { return true },
	}
}

func (c *Config) originAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}
