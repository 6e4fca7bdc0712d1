// Package protocol implements the wire protocol spoken between automation
// clients and the bridge server embedded in the host application.
//
// Every message is a single self-delimited JSON document, UTF-8 encoded,
// with no length prefix and no newline terminator. The message boundary is
// "the accumulated bytes parse as one complete document" — the receiver
// keeps appending chunks to a buffer and re-attempts a parse after each
// read until it succeeds (see Accumulator).
//
// Exactly one Response is produced per Command, in order, on the same
// connection. There is no pipelining and no sequence numbering.
package protocol

// Response status values. A Response carries exactly one of the two.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Command is a single request from a client.
//
// Type selects the handler; Params is handler-specific and deliberately
// unvalidated at this layer — each handler owns its own range and type
// checks.
type Command struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params"`
}

// Response is the reply to exactly one Command.
//
//   - On success: Status is "success" and Result holds the handler's value.
//   - On error:   Status is "error" and Message describes what went wrong.
//     Result is meaningless and omitted.
type Response struct {
	Status  string `json:"status"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success builds a success Response wrapping the handler result.
func Success(result any) *Response {
	return &Response{Status: StatusSuccess, Result: result}
}

// Error builds an error Response with the given message.
// The message is the only diagnostic that crosses the wire — stack traces
// and internal detail stay in the server log.
func Error(message string) *Response {
	return &Response{Status: StatusError, Message: message}
}

// IsError reports whether the response carries an error status.
func (r *Response) IsError() bool {
	return r.Status == StatusError
}
