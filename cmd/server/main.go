// The server command runs the word duel game server. It pairs players in the
// order they connect and referees one match per pair until it's stopped.
//
// Usage:
//
//	server [flags]
//	server [flags] PORT BOARD_SIZE SECONDS_PER_TURN DICTIONARY_PATH
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dcrodman/wordduel/internal"
	"github.com/dcrodman/wordduel/internal/core"
	"github.com/dcrodman/wordduel/internal/core/data"
)

const usage = "server [flags] [PORT BOARD_SIZE SECONDS_PER_TURN DICTIONARY_PATH]"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	v := viper.New()
	flags := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage:\n%s\n", usage)
		flags.PrintDefaults()
	}
	configPath := flags.StringP("config", "c", "./", "Path to the directory containing the server config file")
	history := flags.Int("history", 0, "Print the most recent finished matches and exit")
	flags.Int("port", 0, "Port on which to accept players")
	flags.Int("board-size", 0, "Number of letters on every board")
	flags.Int("seconds-per-turn", 0, "Seconds a player has to enter a guess")
	flags.String("dictionary", "", "Path to the newline-delimited word list")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &core.SetupError{Op: "parsing arguments", Err: err}
	}

	for key, flag := range map[string]string{
		"port":             "port",
		"board_size":       "board-size",
		"seconds_per_turn": "seconds-per-turn",
		"dictionary_path":  "dictionary",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return &core.SetupError{Op: "binding flag " + flag, Err: err}
		}
	}
	if err := bindPositional(v, flags.Args()); err != nil {
		return err
	}

	config, err := core.LoadConfig(v, *configPath)
	if err != nil {
		return err
	}

	if *history > 0 {
		return printHistory(config, *history)
	}

	fmt.Println("Word Duel Server\n" +
		"================")
	fmt.Printf("listening on %s, board size %d, %d seconds per turn, dictionary %s\n",
		config.ListenAddress(), config.BoardSize, config.SecondsPerTurn, config.DictionaryPath)

	// Register a SIGTERM handler so that Ctrl-C will shut the server down gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller := &internal.Controller{Config: config}
	if err := controller.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("shut down")
	return nil
}

// bindPositional supports the four argument form of the command.
// Positional values win over flags and the config file.
func bindPositional(v *viper.Viper, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) != 4 {
		return &core.SetupError{
			Op:  "parsing arguments",
			Err: fmt.Errorf("wrong number of arguments\nusage:\n%s", usage),
		}
	}

	keys := []string{"port", "board_size", "seconds_per_turn"}
	for i, key := range keys {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return &core.SetupError{Op: "parsing " + key, Err: err}
		}
		v.Set(key, n)
	}
	v.Set("dictionary_path", args[3])
	return nil
}

func printHistory(config *core.Config, limit int) error {
	db, err := data.Open(config)
	if err != nil {
		return &core.SetupError{Op: "opening database", Err: err}
	}
	if db == nil {
		return &core.SetupError{Op: "printing history", Err: errors.New("no database engine configured")}
	}
	defer data.Close(db)

	records, err := data.FindMatchRecords(db, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENDED\tPLAYER 1\tPLAYER 2\tSCORE\tROUNDS\tWINNER")
	for _, r := range records {
		winner := strconv.Itoa(r.Winner)
		if r.Forfeit {
			winner += " (forfeit)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d-%d\t%d\t%s\n",
			r.EndedAt.Format("2006-01-02 15:04:05"), r.Player1Addr, r.Player2Addr,
			r.Player1Score, r.Player2Score, r.Rounds, winner)
	}
	return w.Flush()
}
