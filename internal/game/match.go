package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/wordduel/internal/dictionary"
)

// Bytes with a fixed meaning on the wire.
const (
	PlayerOneLabel byte = '1'
	PlayerTwoLabel byte = '2'
	Active         byte = 'Y'
	Waiting        byte = 'N'
	Correct        byte = 1
	Incorrect      byte = 0
)

// WinningScore ends the match as soon as either player reaches it.
const WinningScore = 3

// Peer is one end of a match: a player's connection.
type Peer interface {
	Address() string
	SendByte(b byte) error
	Send(data []byte) error
	SendWord(word []byte) error
	ReceiveWord() ([]byte, error)
	Close() error
}

// DisconnectError is returned when a read or write on a player's connection
// fails. The match can't continue and counts as a forfeit by Player.
type DisconnectError struct {
	Player int
	Err    error
}

func (e *DisconnectError) Error() string {
	return fmt.Sprintf("player %d disconnected: %v", e.Player, e.Err)
}

func (e *DisconnectError) Unwrap() error { return e.Err }

// Result summarizes a finished match.
type Result struct {
	// Rounds is the number of rounds that were completed.
	Rounds int
	// Scores holds the per-player counters for player 1 and 2.
	Scores [2]int
	// Winner is 1 or 2, or 0 if the match was cancelled.
	Winner int
	// Forfeit is set when the match ended because a player disconnected.
	Forfeit bool
}

// Match drives the game between two paired players from the first board
// until one of them reaches WinningScore or a connection breaks.
type Match struct {
	BoardSize      int
	SecondsPerTurn int
	Boards         BoardSource
	Dictionary     dictionary.Lexicon
	Logger         logrus.FieldLogger

	players   [2]Peer
	validator *Validator
	record    *GuessRecord
	board     Board
	round     int
	scores    [2]int
	closeOnce sync.Once
}

func NewMatch(p1, p2 Peer) *Match {
	return &Match{
		players: [2]Peer{p1, p2},
		record:  NewGuessRecord(),
		Logger:  logrus.StandardLogger(),
	}
}

// Run plays the match to completion and closes both connections. The returned
// error is a *DisconnectError if a player dropped, or the context's error if
// ctx was cancelled first.
func (m *Match) Run(ctx context.Context) (Result, error) {
	defer m.close()
	// Cancelling the match closes the sockets, which unblocks any pending read.
	stop := context.AfterFunc(ctx, m.close)
	defer stop()

	m.validator = NewValidator(m.Dictionary)
	m.round = 1

	if err := m.sendSettings(); err != nil {
		return m.abort(ctx, err)
	}

	for {
		over, err := m.playRound()
		if err != nil {
			return m.abort(ctx, err)
		}
		if over {
			result := m.result()
			m.Logger.WithField("scores", result.Scores).Infof("player %d won after %d rounds", result.Winner, result.Rounds)
			return result, nil
		}
	}
}

func (m *Match) close() {
	m.closeOnce.Do(func() {
		for _, p := range m.players {
			_ = p.Close()
		}
	})
}

func (m *Match) result() Result {
	r := Result{Rounds: m.round - 1, Scores: m.scores}
	for i, score := range m.scores {
		if score >= WinningScore {
			r.Winner = i + 1
		}
	}
	return r
}

func (m *Match) abort(ctx context.Context, err error) (Result, error) {
	r := m.result()
	if ctx.Err() != nil {
		return r, ctx.Err()
	}

	var disconnect *DisconnectError
	if errors.As(err, &disconnect) {
		r.Forfeit = true
		r.Winner = 3 - disconnect.Player
	}
	return r, err
}

// sendSettings tells both players the constants of the match.
func (m *Match) sendSettings() error {
	if err := m.broadcast(byte(m.BoardSize)); err != nil {
		return err
	}
	return m.broadcast(byte(m.SecondsPerTurn))
}

// playRound deals a board and alternates turns until a guess is rejected.
// It returns true once the rejected guess decided the match.
func (m *Match) playRound() (bool, error) {
	m.board = m.Boards.Generate(m.BoardSize)
	m.record.Reset()

	logger := m.Logger.WithField("round", m.round)
	logger.Debugf("dealt board %s", m.board)

	if err := m.broadcast(byte(m.round)); err != nil {
		return false, err
	}
	for i := range m.players {
		if err := m.sendByte(i, byte(m.scores[i])); err != nil {
			return false, err
		}
	}
	for i := range m.players {
		if err := m.send(i, m.board); err != nil {
			return false, err
		}
	}

	// Player 1 opens odd rounds, player 2 even ones.
	active := 0
	if m.round%2 == 0 {
		active = 1
	}

	for {
		inactive := 1 - active
		if err := m.sendByte(active, Active); err != nil {
			return false, err
		}
		if err := m.sendByte(inactive, Waiting); err != nil {
			return false, err
		}

		guess, err := m.players[active].ReceiveWord()
		if err != nil {
			return false, &DisconnectError{Player: active + 1, Err: err}
		}

		word, ok := m.validator.Validate(m.board, guess, m.record)
		if ok {
			logger.Debugf("player %d guessed %q", active+1, word)
			if err := m.broadcast(Correct); err != nil {
				return false, err
			}
			if err := m.players[inactive].SendWord([]byte(word)); err != nil {
				return false, &DisconnectError{Player: inactive + 1, Err: err}
			}
			m.record.Add(word)
			active = inactive
			continue
		}

		logger.Debugf("player %d failed with %q", active+1, word)
		if err := m.broadcast(Incorrect); err != nil {
			return false, err
		}
		m.record.Reset()
		// The point goes to the player whose chain was broken.
		m.scores[inactive]++
		m.round++
		return m.scores[inactive] >= WinningScore, nil
	}
}

// broadcast sends b to player 1 and then to player 2.
func (m *Match) broadcast(b byte) error {
	for i := range m.players {
		if err := m.sendByte(i, b); err != nil {
			return err
		}
	}
	return nil
}

func (m *Match) sendByte(player int, b byte) error {
	if err := m.players[player].SendByte(b); err != nil {
		return &DisconnectError{Player: player + 1, Err: err}
	}
	return nil
}

func (m *Match) send(player int, data []byte) error {
	if err := m.players[player].Send(data); err != nil {
		return &DisconnectError{Player: player + 1, Err: err}
	}
	return nil
}
