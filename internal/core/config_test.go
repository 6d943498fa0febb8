package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func validConfig() *Config {
	return &Config{
		Port:           36643,
		BoardSize:      8,
		SecondsPerTurn: 30,
		DictionaryPath: "twl06.txt",
	}
}

func TestConfig_DatabaseURL(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.Name = "testdb"
	cfg.Database.Username = "testuser"
	cfg.Database.Password = "testpassword"

	url := cfg.DatabaseURL()
	expected := "host=localhost port=5432 dbname=testdb user=testuser password=testpassword sslmode="
	if url != expected {
		t.Errorf("DatabaseURL() want = %s, got = %s", expected, url)
	}
}

func TestConfig_ListenAddress(t *testing.T) {
	cfg := &Config{Hostname: "127.0.0.1", Port: 12345}

	addr := cfg.ListenAddress()
	expected := "127.0.0.1:12345"
	if addr != expected {
		t.Errorf("ListenAddress() want = %s, got = %s", expected, addr)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero port", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "empty board", mutate: func(c *Config) { c.BoardSize = 0 }, wantErr: true},
		{name: "board does not fit in a byte", mutate: func(c *Config) { c.BoardSize = 256 }, wantErr: true},
		{name: "no time to guess", mutate: func(c *Config) { c.SecondsPerTurn = 0 }, wantErr: true},
		{name: "missing dictionary", mutate: func(c *Config) { c.DictionaryPath = "" }, wantErr: true},
		{name: "sqlite engine", mutate: func(c *Config) { c.Database.Engine = "sqlite" }},
		{name: "unknown engine", mutate: func(c *Config) { c.Database.Engine = "mongo" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() wantErr = %v, error = %v", tt.wantErr, err)
			}
			var setupErr *SetupError
			if err != nil && !errors.As(err, &setupErr) {
				t.Errorf("Validate() returned %T, want *SetupError", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	contents := []byte("port: 4000\nboard_size: 12\ndatabase:\n  engine: sqlite\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), contents, 0644); err != nil {
		t.Fatalf("error writing config file: %v", err)
	}
	t.Setenv("WORDDUEL_SECONDS_PER_TURN", "9")

	cfg, err := LoadConfig(viper.New(), dir)
	if err != nil {
		t.Fatalf("LoadConfig() returned an unexpected error: %v", err)
	}

	got := struct {
		Port, BoardSize, SecondsPerTurn int
		Dictionary, Engine, Filename    string
	}{cfg.Port, cfg.BoardSize, cfg.SecondsPerTurn, cfg.DictionaryPath, cfg.Database.Engine, cfg.Database.Filename}
	want := struct {
		Port, BoardSize, SecondsPerTurn int
		Dictionary, Engine, Filename    string
	}{4000, 12, 9, "twl06.txt", "sqlite", "wordduel.db"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig() produced the wrong values; diff:\n%s", diff)
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	cfg, err := LoadConfig(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() returned an unexpected error: %v", err)
	}
	if cfg.Port != 36643 || cfg.LogLevel != "info" {
		t.Errorf("LoadConfig() did not apply defaults: %+v", cfg)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "debug"
	cfg.LogFilePath = filepath.Join(t.TempDir(), "server.log")

	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() returned an unexpected error: %v", err)
	}
	if logger.Level != logrus.DebugLevel {
		t.Errorf("NewLogger() level = %v, want %v", logger.Level, logrus.DebugLevel)
	}

	cfg.LogLevel = "loud"
	if _, err := NewLogger(cfg); err == nil {
		t.Error("NewLogger() expected an error for an unknown level")
	}
}
