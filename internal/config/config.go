package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/keyring-tui/internal/app"
	"github.com/atomicstack/keyring-tui/internal/keyring"
	"github.com/atomicstack/keyring-tui/internal/theme"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// EnvPrefix prefixes the environment variable of every flag, e.g.
// KEYRING_TUI_DEFAULT_KEY for --default-key.
const EnvPrefix = "KEYRING_TUI"

const (
	flagConfig        = "config"
	flagHomedir       = "homedir"
	flagProgram       = "gpg"
	flagArmor         = "armor"
	flagOutput        = "output"
	flagDefaultKey    = "default-key"
	flagKeyringFile   = "keyring-file"
	flagDetail        = "detail"
	flagMargin        = "margin"
	flagMinimize      = "minimize"
	flagMinimized     = "minimized"
	flagColored       = "colored"
	flagColor         = "color"
	flagTickRate      = "tick-rate"
	flagWatchInterval = "watch-interval"
	flagLogFile       = "log-file"
	flagTrace         = "trace"
)

// NewFlagSet declares every configuration flag.
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("keyring-tui", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.String(flagConfig, "", "path to a YAML configuration file")
	fs.String(flagHomedir, "", "GnuPG home directory")
	fs.String(flagProgram, "gpg", "gpg binary used for listings and interactive operations")
	fs.BoolP(flagArmor, "a", false, "export keys in ASCII armored form")
	fs.StringP(flagOutput, "o", ".", "directory exported keys are written to")
	fs.StringP(flagDefaultKey, "d", "", "default key used for signing")
	fs.String(flagKeyringFile, "", "read keys from a YAML keyring file instead of gpg")
	fs.String(flagDetail, "minimum", "initial detail level (minimum, standard, full)")
	fs.Int(flagMargin, 1, "margin between table rows")
	fs.Int(flagMinimize, 0, "terminal width below which the table is minimized (0 disables)")
	fs.Bool(flagMinimized, false, "start with a minimized table")
	fs.Bool(flagColored, true, "render with colours")
	fs.StringP(flagColor, "c", theme.DefaultAccent, "accent colour (name or hex)")
	fs.Int(flagTickRate, 250, "tick rate in milliseconds")
	fs.Int(flagWatchInterval, 5000, "keyring change poll interval in milliseconds (0 disables)")
	fs.String(flagLogFile, "", "path to the log file")
	fs.Bool(flagTrace, false, "enable verbose JSON trace logging")
	return fs
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := NewFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return FromFlags(fs, args, environ)
}

// FromFlags builds the configuration from parsed flags. Values are taken from
// the command line first, then the environment, then the configuration file,
// then the flag defaults.
func FromFlags(fs *pflag.FlagSet, args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	path := v.GetString(flagConfig)
	if envPath, ok := env[envKey(flagConfig)]; ok && !fs.Changed(flagConfig) {
		path = envPath
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	fs.VisitAll(func(f *pflag.Flag) {
		if value, ok := env[envKey(f.Name)]; ok && !f.Changed {
			v.Set(f.Name, value)
		}
	})

	detail, err := keyring.ParseDetail(v.GetString(flagDetail))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Program:       v.GetString(flagProgram),
			Homedir:       v.GetString(flagHomedir),
			DefaultKey:    v.GetString(flagDefaultKey),
			KeyringFile:   v.GetString(flagKeyringFile),
			Armor:         v.GetBool(flagArmor),
			OutputDir:     v.GetString(flagOutput),
			Detail:        detail,
			Margin:        v.GetInt(flagMargin),
			Minimize:      v.GetInt(flagMinimize),
			Minimized:     v.GetBool(flagMinimized),
			Colored:       v.GetBool(flagColored),
			Color:         v.GetString(flagColor),
			TickRate:      time.Duration(v.GetInt(flagTickRate)) * time.Millisecond,
			WatchInterval: time.Duration(v.GetInt(flagWatchInterval)) * time.Millisecond,
		},
		Logging: Logging{
			FilePath: v.GetString(flagLogFile),
			Trace:    v.GetBool(flagTrace),
		},
		Flags: map[string]string{},
		Args:  append([]string(nil), args...),
	}
	fs.VisitAll(func(f *pflag.Flag) {
		cfg.Flags[f.Name] = v.GetString(f.Name)
	})
	return cfg, nil
}

func envKey(flag string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 || !strings.HasPrefix(parts[0], EnvPrefix+"_") {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

// Validate checks values the flag parser cannot.
func Validate(cfg Config) error {
	if cfg.App.TickRate <= 0 {
		return fmt.Errorf("tick-rate must be > 0 (got %d)", cfg.App.TickRate.Milliseconds())
	}
	if cfg.App.WatchInterval < 0 {
		return fmt.Errorf("watch-interval must be >= 0 (got %d)", cfg.App.WatchInterval.Milliseconds())
	}
	if cfg.App.Margin < 0 {
		return fmt.Errorf("margin must be >= 0 (got %d)", cfg.App.Margin)
	}
	if cfg.App.Minimize < 0 {
		return fmt.Errorf("minimize must be >= 0 (got %d)", cfg.App.Minimize)
	}
	if _, err := theme.ParseColor(cfg.App.Color); err != nil {
		return err
	}
	if dir := cfg.App.OutputDir; dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("output directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output directory: %s is not a directory", dir)
		}
	}
	return nil
}
