// Package protocol implements the binary wire protocol between the routify
// engine and the browser thin client.
//
// Navigation events flow from client to server and updates flow back, over
// a WebSocket connection (see package bridge). The encoding favors direct
// byte manipulation over reflection; a typical event is well under 100
// bytes.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameHello (0x00): handshake carrying origin and initial location
//   - FrameEvent (0x01): Client → Server navigation events
//   - FramePatch (0x02): Server → Client updates
//   - FrameError (0x03): Server → Client error report
//
// # Events
//
//   - EventClick: a click candidate with button, modifier bits, and the
//     resolved anchor (href, target, download/external flags)
//   - EventHistoryPop: a back/forward navigation with the landed location
//
// # Patches
//
//   - PatchPush: push a location onto the session history
//   - PatchActive: mirror a component's active flag, keyed by component id
//
// Strings are length-prefixed with protobuf-style varints and capped at
// MaxStringLen; oversized or truncated input fails decoding with a coded
// error rather than panicking.
package protocol
