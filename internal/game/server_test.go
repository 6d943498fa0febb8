package game

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/wordduel/internal/core"
	"github.com/dcrodman/wordduel/internal/core/client"
)

func newTestServer(t *testing.T, dictionaryPath string) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Server{
		Name:   "GAME",
		Config: &core.Config{BoardSize: 5, SecondsPerTurn: 20, DictionaryPath: dictionaryPath},
		Logger: logger,
	}
}

func TestServer_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("cat\ndog\n"), 0644); err != nil {
		t.Fatalf("error writing dictionary: %v", err)
	}

	s := newTestServer(t, path)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init() returned an unexpected error: %v", err)
	}
	if !s.dictionary.Search("cat") || s.dictionary.Len() != 2 {
		t.Error("Init() did not load the dictionary")
	}
	if s.boards == nil {
		t.Error("Init() did not create a board generator")
	}
}

func TestServer_InitMissingDictionary(t *testing.T) {
	s := newTestServer(t, filepath.Join(t.TempDir(), "missing.txt"))

	err := s.Init(context.Background())
	var setupErr *core.SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("Init() error = %v, want *core.SetupError", err)
	}
}

func TestServer_Handshake(t *testing.T) {
	s := newTestServer(t, "")

	for player, want := range map[int]byte{1: '1', 2: '2'} {
		server, remote := net.Pipe()
		c := client.NewClient(server)
		s.SetUpClient(c)

		errs := make(chan error, 1)
		go func() { errs <- s.Handshake(c, player) }()

		got, err := client.NewClient(remote).ReceiveByte()
		if err != nil {
			t.Fatalf("error reading label: %v", err)
		}
		if err := <-errs; err != nil {
			t.Fatalf("Handshake() returned an unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("Handshake() sent %q to player %d, want %q", got, player, want)
		}
		server.Close()
		remote.Close()
	}
}
