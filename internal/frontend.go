package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/wordduel/internal/core"
	"github.com/dcrodman/wordduel/internal/core/client"
)

// frontend implements the match coordinator: it accepts players on a TCP
// socket, pairs them in the order they arrive and hands every pair to the
// Backend in a goroutine of its own. It holds no state about running matches.
type frontend struct {
	Address string
	Backend Backend
	Logger  *logrus.Logger
}

// Start initializes the backend, opens the socket and runs the accept loop
// until ctx is cancelled or accepting fails. Once the loop stops, Start waits
// for the running matches to finish.
func (f *frontend) Start(ctx context.Context) error {
	if err := f.Backend.Init(ctx); err != nil {
		return fmt.Errorf("error initializing %s server: %w", f.Backend.Identifier(), err)
	}

	socket, err := f.createSocket()
	if err != nil {
		return &core.SetupError{Op: "creating socket on " + f.Address, Err: err}
	}

	return f.serve(ctx, socket)
}

// createSocket opens a TCP socket to listen for client connections on the Address
// provided to the frontend.
func (f *frontend) createSocket() (*net.TCPListener, error) {
	hostAddr, err := net.ResolveTCPAddr("tcp", f.Address)
	if err != nil {
		return nil, fmt.Errorf("error resolving address %w", err)
	}

	socket, err := net.ListenTCP("tcp", hostAddr)
	if err != nil {
		return nil, fmt.Errorf("error listening on socket: %w", err)
	}

	return socket, nil
}

// serve is the blocking pairing loop. The first player of a pair waits for
// the second; there's no way to leave the queue other than disconnecting.
func (f *frontend) serve(ctx context.Context, socket net.Listener) error {
	f.Logger.Printf("[%s] waiting for connections on %v", f.Backend.Identifier(), socket.Addr())

	// Matches run under their own context so that a fatal accept error can
	// end them as well as a shutdown.
	matchCtx, cancelMatches := context.WithCancel(ctx)
	defer cancelMatches()

	// Closing the socket is the only way to interrupt a blocked Accept.
	stop := context.AfterFunc(matchCtx, func() { _ = socket.Close() })
	defer stop()

	matchWg := &sync.WaitGroup{}
	defer func() {
		f.Logger.Infof("[%v] shutting down (waiting for matches to end)", f.Backend.Identifier())
		matchWg.Wait()
		f.Logger.Infof("[%v] exited", f.Backend.Identifier())
	}()

	fail := func(err error) error {
		err = f.acceptError(ctx, err)
		if err != nil {
			f.Logger.Error(err)
			_ = socket.Close()
			cancelMatches()
		}
		return err
	}

	for {
		p1, err := f.acceptPlayer(socket, 1)
		if err != nil {
			return fail(err)
		}

		p2, err := f.acceptPlayer(socket, 2)
		if err != nil {
			_ = p1.Close()
			return fail(err)
		}

		f.Logger.Infof("[%s] paired %s with %s", f.Backend.Identifier(), p1.Address(), p2.Address())

		matchWg.Add(1)
		// Note: If there is eventually a need to implement worker pooling rather than spawning
		// new goroutines for each match, this is where it should be implemented.
		go func() {
			defer matchWg.Done()
			f.Backend.Play(matchCtx, p1, p2)
		}()
	}
}

// acceptPlayer blocks until a client connects and has been told which player
// it is. Clients that drop during the handshake are discarded and the next
// connection takes their place.
func (f *frontend) acceptPlayer(socket net.Listener, player int) (*client.Client, error) {
	for {
		connection, err := socket.Accept()
		if err != nil {
			return nil, err
		}

		c := client.NewClient(connection)
		f.Backend.SetUpClient(c)
		f.Logger.Infof("[%s] accepted connection from %s as player %d", f.Backend.Identifier(), c.Address(), player)

		if err := f.Backend.Handshake(c, player); err != nil {
			f.Logger.Warnf("[%s] Handshake() failed for client %s: %s", f.Backend.Identifier(), c.Address(), err)
			_ = c.Close()
			continue
		}
		return c, nil
	}
}

// acceptError separates a shutdown, which closes the socket on purpose, from
// a real failure to accept, which is fatal to the whole server.
func (f *frontend) acceptError(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(err, net.ErrClosed) {
		return nil
	}
	return fmt.Errorf("[%s] failed to accept connection: %w", f.Backend.Identifier(), err)
}
