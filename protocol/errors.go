package protocol

import "fmt"

// FramingError indicates that the stream ended before a complete message
// could be read: either the length prefix or the declared payload length was
// cut short. It usually means protocol desynchronization or a premature close
// by the peer.
type FramingError struct {
	What string // the part of the message that was being read
	Err  error
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("protocol: short read of %s: %s", e.What, e.Err)
}

func (e *FramingError) Unwrap() error { return e.Err }

// MalformedPayloadError indicates that a complete payload was read but its
// bytes were not valid UTF-8 JSON.
type MalformedPayloadError struct {
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("protocol: malformed payload: %s", e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }
