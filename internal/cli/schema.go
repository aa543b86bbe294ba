package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/semmy-space/handy/internal/output"
)

// SchemaCmd outputs machine-readable command tree as JSON
type SchemaCmd struct {
	Command string `arg:"" optional:"" help:"Command path to show schema for (e.g., 'config set')"`
	Hidden  bool   `help:"Include hidden commands and flags"`
}

// SchemaNode represents a node in the command tree
type SchemaNode struct {
	Name     string        `json:"name"`
	Path     string        `json:"path,omitempty"`
	Type     string        `json:"type"` // "application", "command", "argument"
	Help     string        `json:"help,omitempty"`
	Aliases  []string      `json:"aliases,omitempty"`
	Children []*SchemaNode `json:"commands,omitempty"`
	Flags    []*SchemaFlag `json:"flags,omitempty"`
	Args     []*SchemaArg  `json:"args,omitempty"`
}

// SchemaFlag represents a command flag
type SchemaFlag struct {
	Name       string   `json:"name"`
	Help       string   `json:"help,omitempty"`
	Type       string   `json:"type"`
	Default    string   `json:"default,omitempty"`
	Enum       []string `json:"enum,omitempty"`
	Short      string   `json:"short,omitempty"`
	Env        string   `json:"env,omitempty"`
	Negatable  bool     `json:"negatable,omitempty"`
	Completion string   `json:"completion,omitempty"`
}

// SchemaArg represents a positional argument
type SchemaArg struct {
	Name       string `json:"name"`
	Help       string `json:"help,omitempty"`
	Required   bool   `json:"required,omitempty"`
	Completion string `json:"completion,omitempty"`
}

// Run executes the schema command
func (cmd *SchemaCmd) Run(ctx *kong.Context) error {
	target := ctx.Model.Node
	if cmd.Command != "" {
		var err error
		target, err = findNodeByPath(target, cmd.Command)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(ctx.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(buildSchemaNode(target, cmd.Hidden))
}

// buildSchemaNode recursively builds schema from Kong node. Global flags are
// listed once, on the node that declares them.
func buildSchemaNode(node *kong.Node, hidden bool) *SchemaNode {
	schema := &SchemaNode{
		Name:    node.Name,
		Type:    nodeTypeString(node.Type),
		Help:    node.Help,
		Aliases: node.Aliases,
	}
	if node.Type != kong.ApplicationNode {
		schema.Path = node.FullPath()
	}

	for _, flag := range node.Flags {
		if flag.Name == "help" || flag.Name == "version" || (flag.Hidden && !hidden) {
			continue
		}
		schema.Flags = append(schema.Flags, schemaFlag(flag))
	}

	for _, arg := range node.Positional {
		schema.Args = append(schema.Args, &SchemaArg{
			Name:       arg.Name,
			Help:       arg.Help,
			Required:   arg.Required,
			Completion: tagValue(arg.Tag, "predictor"),
		})
	}

	for _, child := range node.Children {
		if child.Hidden && !hidden {
			continue
		}
		schema.Children = append(schema.Children, buildSchemaNode(child, hidden))
	}

	return schema
}

func schemaFlag(flag *kong.Flag) *SchemaFlag {
	sf := &SchemaFlag{
		Name:       flag.Name,
		Help:       flag.Help,
		Type:       "string",
		Default:    flag.Default,
		Negatable:  flag.Tag != nil && flag.Tag.Negatable != "",
		Completion: tagValue(flag.Tag, "predictor"),
	}

	if flag.Value != nil && flag.Value.Target.IsValid() {
		sf.Type = strings.TrimPrefix(fmt.Sprintf("%T", flag.Value.Target.Interface()), "*")
	}
	if len(flag.Envs) > 0 {
		sf.Env = flag.Envs[0]
	}
	if flag.Short != 0 {
		sf.Short = string(flag.Short)
	}
	if flag.Enum != "" {
		// An empty enum member only means "not set"
		for _, v := range strings.Split(flag.Enum, ",") {
			if v != "" {
				sf.Enum = append(sf.Enum, v)
			}
		}
	}

	return sf
}

func tagValue(tag *kong.Tag, key string) string {
	if tag == nil {
		return ""
	}
	return tag.Get(key)
}

// findNodeByPath walks the node tree to find a specific command path. Aliases match too.
func findNodeByPath(root *kong.Node, path string) (*kong.Node, error) {
	current := root

	for _, part := range strings.Fields(path) {
		next := childNamed(current, part)
		if next == nil {
			return nil, output.Errorf(output.ExitUsage, "command not found: %s", path).
				WithHint("Run 'handy schema' for the full command tree")
		}
		current = next
	}

	return current, nil
}

func childNamed(node *kong.Node, name string) *kong.Node {
	for _, child := range node.Children {
		if child.Name == name {
			return child
		}
		for _, alias := range child.Aliases {
			if alias == name {
				return child
			}
		}
	}
	return nil
}

// nodeTypeString converts Kong node type to string
func nodeTypeString(t kong.NodeType) string {
	switch t {
	case kong.ApplicationNode:
		return "application"
	case kong.CommandNode:
		return "command"
	case kong.ArgumentNode:
		return "argument"
	default:
		return "unknown"
	}
}
