package client

import (
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/mcpgit/server-contract-tests/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// startStubServer runs a server on an ephemeral port that gives every
// accepted connection to handler, and returns a client pointed at it.
func startStubServer(t *testing.T, handler func(conn net.Conn)) *CommandClient {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				handler(conn)
			}(conn)
		}
	}()

	return clientForListener(t, ln)
}

func clientForListener(t *testing.T, ln net.Listener) *CommandClient {
	t.Helper()
	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return New(host, port, nil)
}

func TestSendCommandExchangesOneRequestAndResponse(t *testing.T) {
	requests := make(chan protocol.Request, 1)
	c := startStubServer(t, func(conn net.Conn) {
		var req protocol.Request
		if err := protocol.ReadMessage(conn, &req); err != nil {
			return
		}
		requests <- req
		_ = protocol.WriteMessage(conn, protocol.Response{
			Status: protocol.StatusSuccess,
			Data:   ldvalue.ObjectBuild().Set("clean", ldvalue.Bool(true)).Build(),
		})
	})

	resp, err := c.SendCommand("status", ldvalue.ObjectBuild().Set("verbose", ldvalue.Bool(true)).Build())
	require.NoError(t, err)
	assert.Equal(t, protocol.StatusSuccess, resp.Status)
	assert.True(t, resp.Data.GetByKey("clean").BoolValue())

	select {
	case req := <-requests:
		assert.Equal(t, "status", req.Command)
		assert.True(t, req.Params.GetByKey("verbose").BoolValue())
	case <-time.After(time.Second):
		t.Fatal("server never received the request")
	}
}

func TestSendCommandDefaultsNullParamsToEmptyObject(t *testing.T) {
	requests := make(chan protocol.Request, 1)
	c := startStubServer(t, func(conn net.Conn) {
		var req protocol.Request
		if err := protocol.ReadMessage(conn, &req); err != nil {
			return
		}
		requests <- req
		_ = protocol.WriteMessage(conn, protocol.Response{Status: protocol.StatusSuccess})
	})

	_, err := c.SendCommand("status", ldvalue.Null())
	require.NoError(t, err)

	req := <-requests
	assert.Equal(t, ldvalue.ObjectType, req.Params.Type())
	assert.Equal(t, 0, req.Params.Count())
}

func TestSendCommandReturnsErrorStatusResponses(t *testing.T) {
	c := startStubServer(t, func(conn net.Conn) {
		var req protocol.Request
		if err := protocol.ReadMessage(conn, &req); err != nil {
			return
		}
		_ = protocol.WriteMessage(conn, protocol.Response{
			Status:  protocol.StatusError,
			Message: "unknown command",
		})
	})

	resp, err := c.SendCommand("invalid_command", ldvalue.Null())
	require.NoError(t, err)
	assert.Equal(t, protocol.StatusError, resp.Status)
	assert.Equal(t, "unknown command", resp.Message)
}

func TestSendCommandConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	c := clientForListener(t, ln)
	require.NoError(t, ln.Close())

	_, err = c.SendCommand("status", ldvalue.Null())
	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Contains(t, connErr.Address, "127.0.0.1")
}

func TestSendCommandServerClosesWithoutResponse(t *testing.T) {
	c := startStubServer(t, func(conn net.Conn) {
		var req protocol.Request
		_ = protocol.ReadMessage(conn, &req)
	})

	_, err := c.SendCommand("status", ldvalue.Null())
	var framingErr *protocol.FramingError
	require.True(t, errors.As(err, &framingErr))
	assert.Equal(t, "length prefix", framingErr.What)
}

func TestSendCommandTruncatedResponse(t *testing.T) {
	c := startStubServer(t, func(conn net.Conn) {
		var req protocol.Request
		if err := protocol.ReadMessage(conn, &req); err != nil {
			return
		}
		// Claim a 100-byte payload but send only a fragment.
		_, _ = conn.Write([]byte{0, 0, 0, 100})
		_, _ = conn.Write([]byte(`{"st`))
	})

	_, err := c.SendCommand("status", ldvalue.Null())
	var framingErr *protocol.FramingError
	require.True(t, errors.As(err, &framingErr))
	assert.Equal(t, "message payload", framingErr.What)
}

func TestSendCommandMalformedResponse(t *testing.T) {
	c := startStubServer(t, func(conn net.Conn) {
		var req protocol.Request
		if err := protocol.ReadMessage(conn, &req); err != nil {
			return
		}
		payload := []byte(`{"status":`)
		_, _ = conn.Write([]byte{0, 0, 0, byte(len(payload))})
		_, _ = conn.Write(payload)
	})

	_, err := c.SendCommand("status", ldvalue.Null())
	var payloadErr *protocol.MalformedPayloadError
	require.True(t, errors.As(err, &payloadErr))
}

func TestSendCommandClosesConnectionAfterExchange(t *testing.T) {
	closed := make(chan error, 1)
	c := startStubServer(t, func(conn net.Conn) {
		var req protocol.Request
		if err := protocol.ReadMessage(conn, &req); err != nil {
			return
		}
		_ = protocol.WriteMessage(conn, protocol.Response{Status: protocol.StatusSuccess})
		// The client should close its end once it has the response.
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, err := conn.Read(make([]byte, 1))
		closed <- err
	})

	_, err := c.SendCommand("status", ldvalue.Null())
	require.NoError(t, err)

	select {
	case readErr := <-closed:
		assert.Error(t, readErr) // EOF from the client closing, not a deadline
		assert.NotContains(t, readErr.Error(), "timeout")
	case <-time.After(3 * time.Second):
		t.Fatal("server never observed the connection closing")
	}
}
