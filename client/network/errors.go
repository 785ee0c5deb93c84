package network

import "errors"

// ErrNotConnected is returned by Send when there is no open connection.
var ErrNotConnected = errors.New("not connected")

// ErrAlreadyOpen is returned by Open while a connection is opening or open.
var ErrAlreadyOpen = errors.New("connection already open")

// ErrOutboxFull is returned by Send when the writer has fallen behind.
var ErrOutboxFull = errors.New("outbox full")

// ErrConnectionClosedByServer is carried by a close event when the server ends the connection
type ErrConnectionClosedByServer struct {
	Reason string
}

func (e *ErrConnectionClosedByServer) Error() string {
	if e.Reason == "" {
		return "connection closed by server"
	}
	return "connection closed by server: " + e.Reason
}

// ErrConnectionClosedByClient is carried by a close event when the client ends the connection
type ErrConnectionClosedByClient struct{}

func (e *ErrConnectionClosedByClient) Error() string {
	return "connection closed by client"
}

func IsClosedByClient(err error) bool {
	var target *ErrConnectionClosedByClient
	return errors.As(err, &target)
}

func IsClosedByServer(err error) bool {
	var target *ErrConnectionClosedByServer
	return errors.As(err, &target)
}
