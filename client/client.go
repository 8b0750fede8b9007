// Package client implements the command client for the MCP git server. Each
// call opens one TCP connection, sends a single framed request, reads a
// single framed response, and closes the connection.
package client

import (
	"fmt"
	"net"

	"github.com/mcpgit/server-contract-tests/framework"
	"github.com/mcpgit/server-contract-tests/protocol"

	"github.com/launchdarkly/go-test-helpers/v2/jsonhelpers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ConnectionError indicates that the server endpoint refused a connection or
// was unreachable. It is fatal to the single SendCommand call, not to the
// process or to a test suite.
type ConnectionError struct {
	Address string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("client: cannot connect to %s: %s", e.Address, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// CommandClient issues commands to the server. Each SendCommand call
// establishes and tears down its own connection; there is no pooling or
// reuse. That keeps the client trivially correct for the low-frequency test
// traffic it exists for.
type CommandClient struct {
	address string
	logger  framework.Logger
}

// New creates a CommandClient for the given server endpoint. A nil logger
// disables debug output.
func New(host string, port int, logger framework.Logger) *CommandClient {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &CommandClient{
		address: fmt.Sprintf("%s:%d", host, port),
		logger:  logger,
	}
}

// Address returns the host:port the client was configured with.
func (c *CommandClient) Address() string { return c.address }

// SendCommand performs one request/response exchange. A null params value is
// sent as an empty object. The returned error is a ConnectionError, a
// protocol.FramingError, or a protocol.MalformedPayloadError; none of them
// are masked. The connection is closed on every exit path.
func (c *CommandClient) SendCommand(command string, params ldvalue.Value) (protocol.Response, error) {
	req := protocol.NewRequest(command, params)

	conn, err := net.Dial("tcp", c.address)
	if err != nil {
		return protocol.Response{}, &ConnectionError{Address: c.address, Err: err}
	}
	defer conn.Close()

	c.logger.Printf("sending to %s: %s", c.address, jsonhelpers.ToJSONString(req))
	if err := protocol.WriteMessage(conn, req); err != nil {
		return protocol.Response{}, err
	}

	var resp protocol.Response
	if err := protocol.ReadMessage(conn, &resp); err != nil {
		return protocol.Response{}, err
	}
	c.logger.Printf("received: %s", jsonhelpers.ToJSONString(resp))
	return resp, nil
}
