package main

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"github.com/dcrodman/wordduel/internal/core"
)

func TestBindPositional(t *testing.T) {
	v := viper.New()
	if err := bindPositional(v, []string{"4000", "10", "45", "words.txt"}); err != nil {
		t.Fatalf("bindPositional() returned an unexpected error: %v", err)
	}

	got := []interface{}{v.GetInt("port"), v.GetInt("board_size"), v.GetInt("seconds_per_turn"), v.GetString("dictionary_path")}
	want := []interface{}{4000, 10, 45, "words.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bindPositional() bound the wrong values; diff:\n%s", diff)
	}
}

func TestBindPositional_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "too few", args: []string{"4000", "10"}},
		{name: "too many", args: []string{"4000", "10", "45", "words.txt", "extra"}},
		{name: "port not a number", args: []string{"http", "10", "45", "words.txt"}},
		{name: "seconds not a number", args: []string{"4000", "10", "soon", "words.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bindPositional(viper.New(), tt.args)
			var setupErr *core.SetupError
			if !errors.As(err, &setupErr) {
				t.Errorf("bindPositional(%v) error = %v, want *core.SetupError", tt.args, err)
			}
		})
	}
}

func TestBindPositional_None(t *testing.T) {
	v := viper.New()
	if err := bindPositional(v, nil); err != nil {
		t.Fatalf("bindPositional() returned an unexpected error: %v", err)
	}
	if v.IsSet("port") {
		t.Error("bindPositional() set port without any arguments")
	}
}

func TestRun_BadArguments(t *testing.T) {
	err := run([]string{"--config", t.TempDir(), "4000", "10"})
	var setupErr *core.SetupError
	if !errors.As(err, &setupErr) {
		t.Errorf("run() error = %v, want *core.SetupError", err)
	}
}
