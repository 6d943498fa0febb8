package internal

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/dcrodman/wordduel/internal/core"
	"github.com/dcrodman/wordduel/internal/core/data"
	"github.com/dcrodman/wordduel/internal/core/debug"
	"github.com/dcrodman/wordduel/internal/dictionary"
	"github.com/dcrodman/wordduel/internal/game"
)

// Controller is the main entrypoint for the server. It's responsible for
// initializing any shared resources (such as database and logging), defining
// the server, and launching everything.
type Controller struct {
	Config *core.Config

	logger *logrus.Logger
	db     *gorm.DB
	server *frontend
}

// Start blocks until ctx is cancelled (returning nil once every match has
// finished) or the server fails. Failures before the first connection can
// be accepted are returned as a *core.SetupError.
func (c *Controller) Start(ctx context.Context) error {
	defer c.Shutdown()

	if err := c.Config.Validate(); err != nil {
		return err
	}

	var err error
	// Set up the logger, which will be used by everything else.
	if c.logger, err = core.NewLogger(c.Config); err != nil {
		return err
	}

	// Start any debug utilities if we're configured to do so.
	if c.Config.Debugging.PprofEnabled {
		debug.StartUtilities(c.logger, c.Config.Debugging.PprofPort)
	}

	if c.db, err = data.Open(c.Config); err != nil {
		return &core.SetupError{Op: "opening database", Err: err}
	}

	c.declareServer()
	return c.server.Start(ctx)
}

// Set up the server we want to run.
func (c *Controller) declareServer() {
	c.server = &frontend{
		Address: c.Config.ListenAddress(),
		Backend: &game.Server{
			Name:         "GAME",
			Config:       c.Config,
			Logger:       c.logger,
			Dictionaries: dictionary.NewCache(c.logger),
			DB:           c.db,
		},
		Logger: c.logger,
	}
}

// Shutdown releases the shared resources once the server has stopped.
func (c *Controller) Shutdown() {
	if c.db == nil {
		return
	}
	if err := data.Close(c.db); err != nil {
		c.logger.Warnf("error closing database: %v", err)
	}
}
