package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"unicode/utf8"
)

const lengthPrefixSize = 4

// EncodeMessage serializes v as UTF-8 JSON and prepends the payload length as
// a 4-byte big-endian unsigned integer. This layer enforces no maximum size;
// the practical limit is what fits in the prefix.
func EncodeMessage(v interface{}) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	msg := make([]byte, lengthPrefixSize+len(payload))
	binary.BigEndian.PutUint32(msg[:lengthPrefixSize], uint32(len(payload)))
	copy(msg[lengthPrefixSize:], payload)
	return msg, nil
}

// WriteMessage encodes v and writes the whole framed message to w in a
// single write.
func WriteMessage(w io.Writer, v interface{}) error {
	msg, err := EncodeMessage(v)
	if err != nil {
		return err
	}
	_, err = w.Write(msg)
	return err
}

// ReadMessage reads one framed message from r and unmarshals its payload into
// out. Partial reads are accumulated until the full declared length has
// arrived. A stream that closes before the length prefix or the declared
// payload length has been fully read produces a FramingError; payload bytes
// that are not valid UTF-8 JSON produce a MalformedPayloadError.
func ReadMessage(r io.Reader, out interface{}) error {
	var prefix [lengthPrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return &FramingError{What: "length prefix", Err: err}
	}
	length := binary.BigEndian.Uint32(prefix[:])

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &FramingError{What: "message payload", Err: err}
	}

	if !utf8.Valid(payload) {
		return &MalformedPayloadError{Err: errors.New("payload is not valid UTF-8")}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &MalformedPayloadError{Err: err}
	}
	return nil
}
