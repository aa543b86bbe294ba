package cli

import (
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/handy/internal/config"
	"github.com/semmy-space/handy/internal/logging"
	"github.com/semmy-space/handy/internal/output"
	"github.com/semmy-space/handy/internal/state"
	"github.com/semmy-space/handy/internal/timestamp"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
}

// CLI is the root command structure
type CLI struct {
	Globals

	Timestamp TimestampCmd `cmd:"" name:"ts" aliases:"timestamp" help:"Convert between Unix timestamps and datetimes"`
	JSON      JSONCmd      `cmd:"" name:"json" help:"Escape, unescape, pretty-print or minimize JSON"`
	URL       URLCmd       `cmd:"" name:"url" help:"Percent-encode or decode a URL"`
	Lines     LinesCmd     `cmd:"" help:"Split an escaped stack trace into lines"`
	Tools     ToolsCmd     `cmd:"" help:"List and run converters"`
	Config    ConfigCmd    `cmd:"" help:"Configuration commands"`
	Schema    SchemaCmd    `cmd:"" help:"Print the command tree as JSON"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`

	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
}

// AfterApply runs once flags are parsed and before the command executes.
// It loads config, resolves the timezone, builds the formatter, logger and
// state store, and binds them for command Run methods.
func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := config.LoadFile(c.ResolvedConfigPath())
	if err != nil {
		return output.NewCLIError(output.ExitConfigError, err.Error()).
			WithHint("Fix or remove " + c.ResolvedConfigPath())
	}
	// config commands must still run on an invalid file so it can be repaired
	repairing := strings.HasPrefix(ctx.Command(), "config ")
	if err := cfg.Validate(); err != nil && !repairing {
		return output.NewCLIError(output.ExitConfigError, err.Error()).
			WithHint("Run 'handy config unset <key>' to restore a default")
	}

	formatter := &FormatterProvider{
		Formatter: output.NewWithWriters(c.ResolvedOutput(cfg), ctx.Stdout, ctx.Stderr),
	}

	logger := logging.New(ctx.Stderr, logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Verbose: c.Verbose,
		NoColor: c.ResolvedOutput(cfg) != "rich",
	})

	loc, err := c.ResolveLocation(cfg)
	if err != nil {
		if !repairing {
			return err
		}
		loc = time.Local
	}
	engine := timestamp.NewEngine(loc)

	var store state.Store
	if c.NoState || config.Bool(cfg.DisableStateStore) {
		store = state.NewMemoryStore()
		logger.Debug().Msg("state persistence disabled")
	} else {
		path := c.ResolvedStatePath()
		store = state.NewFileStore(path)
		logger.Debug().Str("path", path).Msg("using state file")
	}

	logger.Debug().
		Str("timezone", loc.String()).
		Str("output", c.ResolvedOutput(cfg)).
		Msg("configured")

	ctx.Bind(cfg)
	ctx.Bind(formatter)
	ctx.Bind(&c.Globals)
	ctx.Bind(&logger)
	ctx.Bind(engine)
	ctx.BindTo(store, (*state.Store)(nil))

	return nil
}

// ResolveLocation picks the display timezone: --tz, then config, then the system zone
func (g *Globals) ResolveLocation(cfg *config.Config) (*time.Location, error) {
	name := g.TZ
	source := "--tz"
	if name == "" {
		name = cfg.Timezone
		source = "timezone"
	}
	if name == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		code := output.ExitUsage
		if source == "timezone" {
			code = output.ExitConfigError
		}
		return nil, output.Errorf(code, "%s: unknown timezone %q", source, name).
			WithHint("Use an IANA name such as UTC, Europe/Berlin or Asia/Shanghai")
	}
	return loc, nil
}

// ToolsCmd holds converter registry subcommands
type ToolsCmd struct {
	List ToolsListCmd `cmd:"" help:"List available converters"`
	Run  ToolsRunCmd  `cmd:"" help:"Run a converter with its remembered options"`
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Get   ConfigGetCmd        `cmd:"" help:"Get a configuration value"`
	Set   ConfigSetCmd        `cmd:"" help:"Set a configuration value"`
	Unset ConfigUnsetCmd      `cmd:"" help:"Remove a configuration value"`
	List  ConfigListConfigCmd `cmd:"" name:"list" help:"List all configuration values"`
	Path  ConfigPathCmd       `cmd:"" help:"Show config file path"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context, logger *zerolog.Logger) error {
	version := ctx.Model.Vars()["version"]
	logger.Debug().Str("version", version).Msg("version requested")
	_, err := ctx.Stdout.Write([]byte("handy version " + version + "\n"))
	return err
}
