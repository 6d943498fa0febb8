package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contains all of the configuration options available to the game server.
type Config struct {
	// Hostname or IP address on which the server will listen for connections.
	Hostname string `mapstructure:"hostname"`
	// Port on which the server accepts players.
	Port int `mapstructure:"port"`
	// Number of letters dealt on every board.
	BoardSize int `mapstructure:"board_size"`
	// Seconds a player has to enter a guess. Only the client enforces it.
	SecondsPerTurn int `mapstructure:"seconds_per_turn"`
	// Newline-delimited lowercase word list used to validate guesses.
	DictionaryPath string `mapstructure:"dictionary_path"`
	// Full path to file to which logs will be written. Blank will write to stdout.
	LogFilePath string `mapstructure:"log_file_path"`
	// Minimum level of a log required to be written. Options: debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`

	Database struct {
		// Either sqlite or postgres. Blank disables match history.
		Engine string `mapstructure:"engine"`
		// Database file used by the sqlite engine.
		Filename string `mapstructure:"filename"`
		// Hostname of the Postgres database instance.
		Host string `mapstructure:"host"`
		// Port on db_host on which the Postgres instance is accepting connections.
		Port int `mapstructure:"port"`
		// Name of the database in Postgres.
		Name string `mapstructure:"name"`
		// Username and password of a user with full RW privileges to ${db_name}.
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		// Set to verify-full if the Postgres instance supports SSL.
		SSLMode string `mapstructure:"sslmode"`
	} `mapstructure:"database"`

	Debugging struct {
		// Enable the pprof HTTP server.
		PprofEnabled bool `mapstructure:"pprof_enabled"`
		// Port on which a pprof server will be started if enabled.
		PprofPort int `mapstructure:"pprof_port"`
		// Log every byte exchanged with the players.
		PacketLoggingEnabled bool `mapstructure:"packet_logging_enabled"`
		// Enable database-level query logging.
		DatabaseLoggingEnabled bool `mapstructure:"database_logging_enabled"`
	} `mapstructure:"debugging"`
}

const envVarPrefix = "WORDDUEL"

var defaults = map[string]interface{}{
	"hostname":                           "",
	"port":                               36643,
	"board_size":                         8,
	"seconds_per_turn":                   30,
	"dictionary_path":                    "twl06.txt",
	"log_file_path":                      "",
	"log_level":                          "info",
	"database.engine":                    "",
	"database.filename":                  "wordduel.db",
	"database.host":                      "localhost",
	"database.port":                      5432,
	"database.name":                      "wordduel",
	"database.username":                  "",
	"database.password":                  "",
	"database.sslmode":                   "disable",
	"debugging.pprof_enabled":            false,
	"debugging.pprof_port":               6060,
	"debugging.packet_logging_enabled":   false,
	"debugging.database_logging_enabled": false,
}

// LoadConfig initializes v with the contents of the config file under configPath
// (if there is one), the defaults, and any WORDDUEL_* environment variables.
// Flags bound to v before the call take precedence over all of them.
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	// Variables already present in the environment win over the .env file.
	if err := godotenv.Load(filepath.Join(configPath, ".env")); err != nil && !isNotExist(err) {
		return nil, &SetupError{Op: "loading .env", Err: err}
	}

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &SetupError{Op: "reading config file", Err: err}
		}
	}

	// This allows us to set nested yaml config options through environment
	// variables. For example, database.host can be set using: <envVarPrefix>_DATABASE_HOST
	for _, k := range v.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := v.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			return nil, &SetupError{Op: "binding " + k, Err: err}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, &SetupError{Op: "unmarshaling config", Err: err}
	}
	return config, nil
}

// Validate checks the values that the game can't run without.
func (c *Config) Validate() error {
	switch {
	case c.Port < 1 || c.Port > 65535:
		return &SetupError{Op: "validating config", Err: fmt.Errorf("bad port number %d", c.Port)}
	case c.BoardSize < 1 || c.BoardSize > 255:
		return &SetupError{Op: "validating config", Err: fmt.Errorf("board size must be between 1 and 255, got %d", c.BoardSize)}
	case c.SecondsPerTurn < 1 || c.SecondsPerTurn > 255:
		return &SetupError{Op: "validating config", Err: fmt.Errorf("seconds per turn must be between 1 and 255, got %d", c.SecondsPerTurn)}
	case c.DictionaryPath == "":
		return &SetupError{Op: "validating config", Err: errors.New("no dictionary path provided")}
	}

	switch strings.ToLower(c.Database.Engine) {
	case "", "sqlite", "postgres":
	default:
		return &SetupError{Op: "validating config", Err: fmt.Errorf("unsupported database engine %q", c.Database.Engine)}
	}
	return nil
}

// ListenAddress returns the address the match coordinator binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Hostname, c.Port)
}

const databaseURITemplate = "host=%s port=%d dbname=%s user=%s password=%s sslmode=%s"

// DatabaseURL returns a database URL generated from the provided config values.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		databaseURITemplate,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.Username,
		c.Database.Password,
		c.Database.SSLMode,
	)
}
