package client

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/wordduel/internal/core/debug"
)

// MaxWordLength is the longest word that fits behind a one byte length prefix.
const MaxWordLength = 255

// ErrPeerDisconnected is wrapped by every error caused by a failed read or
// write on the underlying connection.
var ErrPeerDisconnected = errors.New("peer disconnected")

// Client represents a player connected over a raw byte stream. The same type
// is used by the server to talk to players and by tests to act as a player.
type Client struct {
	connection net.Conn
	ipAddr     string
	port       string

	// Debug enables dumps of every byte sent and received through Logger.
	Debug  bool
	Logger logrus.FieldLogger
}

func NewClient(connection net.Conn) *Client {
	host, port, err := net.SplitHostPort(connection.RemoteAddr().String())
	if err != nil {
		host = connection.RemoteAddr().String()
	}

	return &Client{
		connection: connection,
		ipAddr:     host,
		port:       port,
		Logger:     logrus.StandardLogger(),
	}
}

func (c *Client) IPAddr() string { return c.ipAddr }
func (c *Client) Port() string   { return c.port }

// Address returns the host:port pair of the remote end.
func (c *Client) Address() string {
	if c.port == "" {
		return c.ipAddr
	}
	return net.JoinHostPort(c.ipAddr, c.port)
}

// Read consumes the available bytes directly from the client's connection.
func (c *Client) Read(b []byte) (int, error) {
	return c.connection.Read(b)
}

// Write directly sends data to the client over its connection.
func (c *Client) Write(bytes []byte) (int, error) {
	return c.connection.Write(bytes)
}

// Close the connection.
func (c *Client) Close() error {
	return c.connection.Close()
}

// SendByte sends a single unsigned byte.
func (c *Client) SendByte(b byte) error {
	return c.Send([]byte{b})
}

// Send writes all of data to the client as-is.
func (c *Client) Send(data []byte) error {
	if c.Debug {
		debug.DumpPacket(c.Logger, c.Address(), debug.ServerPacket, data)
	}
	return c.transmit(data)
}

// SendWord sends word behind a one byte length prefix.
func (c *Client) SendWord(word []byte) error {
	if len(word) > MaxWordLength {
		return fmt.Errorf("word of length %d does not fit in a length prefix", len(word))
	}
	packet := make([]byte, 0, len(word)+1)
	packet = append(packet, byte(len(word)))
	packet = append(packet, word...)
	return c.Send(packet)
}

// SendTimeout tells the server the player ran out of time, which is encoded
// as a one byte word containing only a zero byte.
func (c *Client) SendTimeout() error {
	return c.SendWord([]byte{0})
}

// transmit writes the contents of data to the connection until every byte
// has been sent.
func (c *Client) transmit(data []byte) error {
	bytesSent := 0

	for bytesSent < len(data) {
		b, err := c.Write(data[bytesSent:])
		if err != nil {
			return fmt.Errorf("%w: failed to send to client %v: %w", ErrPeerDisconnected, c.Address(), err)
		}
		bytesSent += b
	}

	return nil
}

// ReceiveByte blocks until the next byte arrives.
func (c *Client) ReceiveByte() (byte, error) {
	b, err := c.Receive(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Receive blocks until exactly n bytes have been read.
func (c *Client) Receive(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.connection, buf); err != nil {
		return nil, fmt.Errorf("%w: failed to read from client %v: %w", ErrPeerDisconnected, c.Address(), err)
	}
	if c.Debug {
		debug.DumpPacket(c.Logger, c.Address(), debug.ClientPacket, buf)
	}
	return buf, nil
}

// ReceiveWord reads a length-prefixed word. A zero length yields an empty
// (non-nil) slice.
func (c *Client) ReceiveWord() ([]byte, error) {
	size, err := c.ReceiveByte()
	if err != nil {
		return nil, err
	}
	return c.Receive(int(size))
}
