package cli

import (
	"os"

	"golang.org/x/term"

	"github.com/semmy-space/handy/internal/config"
)

// Globals holds global flags available to all commands
type Globals struct {
	Output     string `help:"Output format" default:"" enum:"json,plain,rich,auto," short:"o" env:"HANDY_OUTPUT"`
	Verbose    bool   `help:"Verbose output" short:"v" env:"HANDY_VERBOSE"`
	TZ         string `help:"Timezone for rendering and parsing datetimes (IANA name)" name:"tz" env:"HANDY_TZ"`
	NoState    bool   `help:"Do not read or write the remembered converter state" name:"no-state" env:"HANDY_NO_STATE"`
	Copy       bool   `help:"Copy the converted output to the clipboard" short:"c"`
	ConfigFile string `help:"Config file path" name:"config" type:"path" env:"HANDY_CONFIG" placeholder:"PATH"`
	StateFile  string `help:"State file path" name:"state-file" type:"path" env:"HANDY_STATE_FILE" placeholder:"PATH" hidden:""`
}

// ResolvedOutput returns the effective output mode: the flag, then the
// configured default, then auto. Auto is rich on a TTY and plain otherwise.
func (g *Globals) ResolvedOutput(cfg *config.Config) string {
	mode := g.Output
	if mode == "" && cfg != nil {
		mode = cfg.DefaultOutput
	}
	if mode != "" && mode != "auto" {
		return mode
	}

	// Detect if stdout is a TTY
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "rich"
	}

	return "plain"
}

// ResolvedConfigPath returns --config or the XDG config path
func (g *Globals) ResolvedConfigPath() string {
	if g.ConfigFile != "" {
		return g.ConfigFile
	}
	return config.ConfigPath()
}

// ResolvedStatePath returns --state-file or the XDG state path
func (g *Globals) ResolvedStatePath() string {
	if g.StateFile != "" {
		return g.StateFile
	}
	return config.StatePath()
}
