package internal

import (
	"context"

	"github.com/dcrodman/wordduel/internal/core/client"
)

// Backend is the game logic behind the frontend. The frontend owns the socket
// and the pairing of players; everything that happens once two players are
// paired belongs to the Backend.
type Backend interface {
	// Identifier returns a uniquely identifying string.
	Identifier() string

	// Init is called before a Backend is started as a hook for the Backend to
	// perform any necessary initialization before it can accept clients.
	Init(ctx context.Context) error

	// SetUpClient performs any initialization on the Client needed to be
	// able to begin the session.
	SetUpClient(c *client.Client)

	// Handshake sends the first message to a client that just connected as
	// the given player (1 or 2).
	Handshake(c *client.Client, player int) error

	// Play runs a match between two paired clients. It's responsible for
	// closing both connections before returning.
	Play(ctx context.Context, p1, p2 *client.Client)
}
