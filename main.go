package main

import (
	"fmt"
	"os"

	"github.com/ntustvocab/vocabterm/internal/app"
	"github.com/ntustvocab/vocabterm/internal/config"
	"github.com/ntustvocab/vocabterm/internal/logging"
	"github.com/ntustvocab/vocabterm/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	terminal := detectTerminal(standardDescriptors())
	cfg.App = withTerminalSize(cfg.App, terminal)
	events.App.Start(startupPayload(cfg, terminal))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// descriptor is a file descriptor checked for a terminal at startup.
type descriptor struct {
	name string
	fd   int
}

func standardDescriptors() []descriptor {
	return []descriptor{
		{"stdout", int(os.Stdout.Fd())},
		{"stdin", int(os.Stdin.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
}

type terminalInfo struct {
	Source string          `json:"source,omitempty"`
	Width  int             `json:"width,omitempty"`
	Height int             `json:"height,omitempty"`
	Checks []terminalCheck `json:"checks"`
}

type terminalCheck struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Error    string `json:"error,omitempty"`
}

// Sized reports whether any descriptor gave a usable size.
func (t terminalInfo) Sized() bool {
	return t.Width > 0 && t.Height > 0
}

// detectTerminal records which descriptors are terminals. The size comes from
// the first one that reports it.
func detectTerminal(fds []descriptor) terminalInfo {
	info := terminalInfo{Checks: make([]terminalCheck, 0, len(fds))}
	for _, d := range fds {
		check := terminalCheck{Name: d.name}
		if d.fd >= 0 && term.IsTerminal(d.fd) {
			check.Terminal = true
			width, height, err := term.GetSize(d.fd)
			switch {
			case err != nil:
				check.Error = err.Error()
			case !info.Sized() && width > 0 && height > 0:
				info.Source, info.Width, info.Height = d.name, width, height
			}
		}
		info.Checks = append(info.Checks, check)
	}
	return info
}

// withTerminalSize hands the detected size to the first frame. Explicit
// --width/--height win, and later resizes replace it either way.
func withTerminalSize(cfg app.Config, info terminalInfo) app.Config {
	if !info.Sized() {
		return cfg
	}
	if cfg.Width <= 0 {
		cfg.TermWidth = info.Width
	}
	if cfg.Height <= 0 {
		cfg.TermHeight = info.Height
	}
	return cfg
}

func startupPayload(cfg config.Config, info terminalInfo) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"api":      cfg.App.APIURL,
		"defaults": cfg.App.Defaults,
		"prefs":    cfg.App.PrefsPath,
		"layout":   string(cfg.App.Layout),
		"theme":    string(cfg.App.Theme),
		"terminal": info,
	}
	if cfg.App.Width > 0 || cfg.App.TermWidth > 0 {
		payload["viewport"] = map[string]int{
			"width":      cfg.App.Width,
			"height":     cfg.App.Height,
			"termWidth":  cfg.App.TermWidth,
			"termHeight": cfg.App.TermHeight,
		}
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}
