package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/semmy-space/handy/internal/config"
	"github.com/semmy-space/handy/internal/output"
)

// ConfigGetCmd implements config get command
type ConfigGetCmd struct {
	Key string `arg:"" help:"Config key to get (e.g., timezone, default_unit)" predictor:"config-key"`
}

// Run executes the get command
func (cmd *ConfigGetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	value, err := cfg.Get(cmd.Key)
	if err != nil {
		return unknownKey(cmd.Key)
	}

	return fp.Formatter.Print(value)
}

// ConfigSetCmd implements config set command
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key to set" predictor:"config-key"`
	Value string `arg:"" help:"Value to set"`
}

// Run executes the set command
func (cmd *ConfigSetCmd) Run(ctx *kong.Context, cfg *config.Config, globals *Globals) error {
	// Validate key exists
	if _, err := cfg.Get(cmd.Key); err != nil {
		return unknownKey(cmd.Key)
	}

	if err := cfg.Set(cmd.Key, cmd.Value); err != nil {
		return &output.CLIError{
			Message:  err.Error(),
			ExitCode: output.ExitUsage,
		}
	}

	if err := cfg.SaveFile(globals.ResolvedConfigPath()); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to save config: %v", err),
			ExitCode: output.ExitConfigError,
		}
	}

	fmt.Fprintf(ctx.Stderr, "Set %s = %s\n", cmd.Key, cmd.Value)
	return nil
}

// ConfigUnsetCmd implements config unset command
type ConfigUnsetCmd struct {
	Key string `arg:"" help:"Config key to remove" predictor:"config-key"`
}

// Run executes the unset command
func (cmd *ConfigUnsetCmd) Run(ctx *kong.Context, cfg *config.Config, globals *Globals) error {
	if err := cfg.Unset(cmd.Key); err != nil {
		return unknownKey(cmd.Key)
	}

	if err := cfg.SaveFile(globals.ResolvedConfigPath()); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to save config: %v", err),
			ExitCode: output.ExitConfigError,
		}
	}

	fmt.Fprintf(ctx.Stderr, "Unset %s\n", cmd.Key)
	return nil
}

// ConfigListConfigCmd implements config list command
type ConfigListConfigCmd struct{}

// Run executes the list command
func (cmd *ConfigListConfigCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	// Build list of config key-value pairs
	type ConfigItem struct {
		Key   string
		Value string
	}

	var items []ConfigItem
	for _, key := range config.Keys() {
		value, _ := cfg.Get(key)
		items = append(items, ConfigItem{Key: key, Value: value})
	}

	cols := []output.Column{
		{Name: "Key", Key: "Key"},
		{Name: "Value", Key: "Value"},
	}

	return fp.Formatter.PrintList(items, cols)
}

// ConfigPathCmd implements config path command
type ConfigPathCmd struct {
	State bool `help:"Show the state file path instead"`
}

// Run executes the path command
func (cmd *ConfigPathCmd) Run(ctx *kong.Context, globals *Globals) error {
	path := globals.ResolvedConfigPath()
	if cmd.State {
		path = globals.ResolvedStatePath()
	}

	// Print path to stdout
	fmt.Fprintln(ctx.Stdout, path)

	// Print existence hint to stderr
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(ctx.Stderr, "(file does not exist yet - will be created on first write)\n")
	} else {
		fmt.Fprintf(ctx.Stderr, "(file exists)\n")
	}

	return nil
}

func unknownKey(key string) *output.CLIError {
	return output.Errorf(output.ExitUsage, "Unknown config key: %s", key).
		WithHint("Valid keys: " + strings.Join(config.Keys(), ", "))
}
