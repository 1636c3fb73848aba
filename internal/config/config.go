package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ntustvocab/vocabterm/internal/app"
	"github.com/ntustvocab/vocabterm/internal/catalog"
	"github.com/ntustvocab/vocabterm/internal/menu"
	"github.com/ntustvocab/vocabterm/internal/theme"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envAPI        = "VOCABTERM_API"
	envPart       = "VOCABTERM_PART"
	envTopic      = "VOCABTERM_TOPIC"
	envPrefs      = "VOCABTERM_PREFS"
	envLayout     = "VOCABTERM_LAYOUT"
	envTheme      = "VOCABTERM_THEME"
	envPractice   = "VOCABTERM_PRACTICE"
	envWidth      = "VOCABTERM_WIDTH"
	envHeight     = "VOCABTERM_HEIGHT"
	envShowFooter = "VOCABTERM_FOOTER"
	envPoll       = "VOCABTERM_POLL"
	envTimeout    = "VOCABTERM_TIMEOUT"
	envVerbose    = "VOCABTERM_VERBOSE"
	envTrace      = "VOCABTERM_TRACE"
	envLogFile    = "VOCABTERM_LOG_FILE"
)

// Default selection used on first run and after a failed load.
const (
	DefaultPart  = "1"
	DefaultTopic = "pvqc-ict"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("vocabterm", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	api := fs.String("api", envOrDefault(env, envAPI, catalog.DefaultBaseURL), "base URL of the word API")
	part := fs.String("part", envOrDefault(env, envPart, DefaultPart), "default part (a number or \"all\")")
	topic := fs.String("topic", envOrDefault(env, envTopic, DefaultTopic), "default topic (an id or \"all\")")
	prefsPath := fs.String("prefs", envOrDefault(env, envPrefs, ""), "preference database path (\"memory\" disables persistence)")
	layout := fs.String("layout", envOrDefault(env, envLayout, ""), "word layout: grid or list (empty uses the saved layout)")
	themeName := fs.String("theme", envOrDefault(env, envTheme, ""), "colour theme: dark or light (empty uses the saved theme)")
	practice := fs.Bool("practice", envOrBool(env, envPractice, false), "start a practice session after the first load")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	poll := fs.Duration("poll", envOrDuration(env, envPoll, 30*time.Second), "heartbeat interval (0 disables health checks)")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, 15*time.Second), "timeout for each API request")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show backend status even when healthy")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *poll < 0 {
		return Config{}, fmt.Errorf("poll must be >= 0 (got %s)", *poll)
	}
	if *timeout <= 0 {
		return Config{}, fmt.Errorf("timeout must be > 0 (got %s)", *timeout)
	}
	defaultPart, err := vocab.ParsePart(*part)
	if err != nil {
		return Config{}, fmt.Errorf("part: %w", err)
	}
	defaultTopic, err := vocab.ParseTopic(*topic)
	if err != nil {
		return Config{}, fmt.Errorf("topic: %w", err)
	}
	var viewLayout menu.Layout
	if strings.TrimSpace(*layout) != "" {
		if viewLayout, err = menu.ParseLayout(*layout); err != nil {
			return Config{}, err
		}
	}

	var colours theme.Name
	if strings.TrimSpace(*themeName) != "" {
		if colours, err = theme.Parse(*themeName); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		App: app.Config{
			APIURL:       *api,
			Defaults:     vocab.Selection{Part: defaultPart, Topic: defaultTopic},
			PrefsPath:    *prefsPath,
			Layout:       viewLayout,
			Theme:        colours,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			Practice:     *practice,
			PollInterval: *poll,
			Timeout:      *timeout,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"api":      *api,
			"part":     defaultPart.String(),
			"topic":    defaultTopic.String(),
			"prefs":    *prefsPath,
			"layout":   string(viewLayout),
			"theme":    string(colours),
			"practice": strconv.FormatBool(*practice),
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"poll":     poll.String(),
			"timeout":  timeout.String(),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	u, err := url.Parse(strings.TrimSpace(cfg.App.APIURL))
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url %q must be http or https", cfg.App.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api url %q has no host", cfg.App.APIURL)
	}
	return nil
}
