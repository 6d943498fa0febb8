package game

import (
	"context"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/dcrodman/wordduel/internal/core"
	"github.com/dcrodman/wordduel/internal/core/client"
	"github.com/dcrodman/wordduel/internal/core/data"
	"github.com/dcrodman/wordduel/internal/dictionary"
)

// Server runs matches between players paired by the frontend.
type Server struct {
	Name         string
	Config       *core.Config
	Logger       *logrus.Logger
	Dictionaries *dictionary.Cache
	// DB stores the history of finished matches. Nil disables it.
	DB *gorm.DB

	dictionary *dictionary.Trie
	boards     *BoardGenerator
	matchCount atomic.Uint64
}

func (s *Server) Identifier() string {
	return s.Name
}

// Init loads the dictionary so that a missing word list stops the server
// before any player connects.
func (s *Server) Init(ctx context.Context) error {
	if s.Dictionaries == nil {
		s.Dictionaries = dictionary.NewCache(s.Logger)
	}
	trie, err := s.Dictionaries.Get(s.Config.DictionaryPath)
	if err != nil {
		return &core.SetupError{Op: "loading dictionary", Err: err}
	}
	s.dictionary = trie
	s.boards = NewBoardGenerator(time.Now().UnixNano())
	return nil
}

func (s *Server) SetUpClient(c *client.Client) {
	c.Debug = s.Config.Debugging.PacketLoggingEnabled
	c.Logger = s.Logger
}

// Handshake tells a newly connected player which player they are.
func (s *Server) Handshake(c *client.Client, player int) error {
	label := PlayerOneLabel
	if player == 2 {
		label = PlayerTwoLabel
	}
	return c.SendByte(label)
}

// Play runs a match between the two players and records its outcome. It
// only returns once the match is over and both connections are closed.
func (s *Server) Play(ctx context.Context, p1, p2 *client.Client) {
	id := s.matchCount.Add(1)
	logger := s.Logger.WithFields(logrus.Fields{
		"match":   id,
		"player1": p1.Address(),
		"player2": p2.Address(),
	})

	match := NewMatch(p1, p2)
	match.BoardSize = s.Config.BoardSize
	match.SecondsPerTurn = s.Config.SecondsPerTurn
	match.Boards = s.boards
	match.Dictionary = s.dictionary
	match.Logger = logger

	defer s.recoverMatch(logger, match)

	logger.Infof("[%s] match started", s.Name)
	s.logHistory(logger, p1, p2)
	started := time.Now()

	result, err := match.Run(ctx)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		logger.Infof("[%s] match cancelled by shutdown", s.Name)
		return
	default:
		logger.Warnf("[%s] match ended early: %v", s.Name, err)
	}

	s.saveResult(logger, &data.MatchRecord{
		Player1Addr:  p1.IPAddr(),
		Player2Addr:  p2.IPAddr(),
		Rounds:       result.Rounds,
		Player1Score: result.Scores[0],
		Player2Score: result.Scores[1],
		Winner:       result.Winner,
		Forfeit:      result.Forfeit,
		StartedAt:    started,
		EndedAt:      time.Now(),
	})
}

// recoverMatch is the failsafe that catches any panics in a match and makes
// sure both connections are closed.
func (s *Server) recoverMatch(logger logrus.FieldLogger, match *Match) {
	if err := recover(); err != nil {
		logger.Errorf("[%s] error in match: error=%s, trace: %s", s.Name, err, debug.Stack())
		match.close()
	}
}

func (s *Server) logHistory(logger logrus.FieldLogger, players ...*client.Client) {
	if s.DB == nil {
		return
	}
	for i, p := range players {
		records, err := data.FindMatchRecordsByAddress(s.DB, p.IPAddr())
		if err != nil {
			logger.Warnf("[%s] failed to look up match history: %v", s.Name, err)
			return
		}
		won := 0
		for _, r := range records {
			if (r.Player1Addr == p.IPAddr() && r.Winner == 1) || (r.Player2Addr == p.IPAddr() && r.Winner == 2) {
				won++
			}
		}
		logger.Debugf("[%s] player %d has won %d of %d previous matches", s.Name, i+1, won, len(records))
	}
}

func (s *Server) saveResult(logger logrus.FieldLogger, record *data.MatchRecord) {
	if s.DB == nil {
		return
	}
	if err := data.CreateMatchRecord(s.DB, record); err != nil {
		logger.Warnf("[%s] failed to save match result: %v", s.Name, err)
	}
}
