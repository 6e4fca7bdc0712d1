package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// DefaultMaxBuffer caps the receive buffer at 1 MiB. A peer that sends more
// than this without ever producing a parseable document is misbehaving and
// its connection is torn down.
const DefaultMaxBuffer = 1 << 20

var (
	// ErrBufferOverflow means the receive buffer exceeded its cap without a
	// complete message. Fatal for the connection: no response is sent.
	ErrBufferOverflow = errors.New("message buffer overflow")

	// ErrInvalidUTF8 means a received chunk was not valid UTF-8. The chunk
	// is dropped but the connection stays open — a clean retry may follow.
	ErrInvalidUTF8 = errors.New("invalid utf-8 in received chunk")

	// ErrIncompleteMessage means the stream ended (timeout or close) with
	// partial, unparseable data accumulated.
	ErrIncompleteMessage = errors.New("incomplete message received")
)

// Write serializes v as one JSON document and writes all of it to w.
// A partial write is a failure: net.Conn.Write only returns nil error once
// every byte has been handed to the transport, so either the full document
// is delivered or an error comes back. No delimiter is appended — the
// document delimits itself.
func Write(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Accumulator reassembles self-delimited JSON documents from an arbitrary
// sequence of byte chunks. It never fires on partial input: a message is
// surfaced only once the whole buffer parses as one complete document.
//
// Not safe for concurrent use; each connection owns its own Accumulator.
type Accumulator struct {
	buf []byte
	max int
}

// NewAccumulator returns an Accumulator with the given buffer cap.
// maxBuffer <= 0 selects DefaultMaxBuffer.
func NewAccumulator(maxBuffer int) *Accumulator {
	if maxBuffer <= 0 {
		maxBuffer = DefaultMaxBuffer
	}
	return &Accumulator{max: maxBuffer}
}

// Feed appends a chunk to the buffer.
//
// A chunk that is not valid UTF-8 is dropped in its entirety and
// ErrInvalidUTF8 is returned; the buffer keeps its previous contents and
// the connection may continue. Exceeding the buffer cap returns
// ErrBufferOverflow, which the caller must treat as fatal for the
// connection.
func (a *Accumulator) Feed(chunk []byte) error {
	if !utf8.Valid(chunk) {
		return ErrInvalidUTF8
	}
	if len(a.buf)+len(chunk) > a.max {
		return ErrBufferOverflow
	}
	a.buf = append(a.buf, chunk...)
	return nil
}

// TryParse attempts to decode one complete JSON document from the front
// of the buffer into v. On success the consumed bytes are removed —
// anything past the first document stays buffered, so back-to-back
// documents arriving in one read are surfaced one call at a time. On
// failure the buffer is kept as-is and false is returned: an incomplete
// document simply needs more chunks, so parse failure is never an error
// at this layer.
func (a *Accumulator) TryParse(v any) bool {
	if len(a.buf) == 0 {
		return false
	}
	dec := json.NewDecoder(bytes.NewReader(a.buf))
	if err := dec.Decode(v); err != nil {
		return false
	}
	rest := a.buf[dec.InputOffset():]
	a.buf = append(a.buf[:0], rest...)
	return true
}

// Len returns the number of buffered bytes awaiting a complete parse.
func (a *Accumulator) Len() int {
	return len(a.buf)
}

// Reset discards any buffered bytes.
func (a *Accumulator) Reset() {
	a.buf = a.buf[:0]
}
