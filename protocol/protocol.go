// Package protocol defines the wire format spoken between this harness and
// the MCP git server. Each message is a 4-byte big-endian length prefix
// followed by a UTF-8 JSON payload; a connection carries exactly one request
// and one response.
package protocol

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// Status is the one response field the client itself interprets. Everything
// else in a response is opaque payload for the caller to interpret.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Request asks the server to execute a single command. Command is a free-form
// identifier interpreted entirely by the server; the client never
// special-cases command strings.
type Request struct {
	Command string        `json:"command"`
	Params  ldvalue.Value `json:"params"`
}

// NewRequest builds a Request. The server expects "params" to always be a
// JSON object, so a null params value is replaced with an empty object.
func NewRequest(command string, params ldvalue.Value) Request {
	if params.IsNull() {
		params = ldvalue.ObjectBuild().Build()
	}
	return Request{Command: command, Params: params}
}

// Response is the server's reply to a single Request. Data holds
// command-specific results on success; Message is a human-readable
// explanation, normally present when Status is StatusError.
type Response struct {
	Status  Status        `json:"status"`
	Data    ldvalue.Value `json:"data"`
	Message string        `json:"message,omitempty"`
}
