// Package cli holds helpers shared by the lexsearch and lexsearchd binaries.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const helpJSONFlag = "help-json"

// FlagSchema describes one command flag.
type FlagSchema struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Inherited   bool   `json:"inherited,omitempty"`
}

// CommandSchema is the machine-readable form of a command tree, so scripts
// can discover arguments and flags without scraping --help.
type CommandSchema struct {
	Name        string          `json:"name"`
	Path        string          `json:"path"`
	Use         string          `json:"use,omitempty"`
	Description string          `json:"description,omitempty"`
	Long        string          `json:"long,omitempty"`
	Aliases     []string        `json:"aliases,omitempty"`
	ValidArgs   []string        `json:"validArgs,omitempty"`
	Flags       []FlagSchema    `json:"flags,omitempty"`
	Subcommands []CommandSchema `json:"subcommands,omitempty"`
}

func GenerateSchema(cmd *cobra.Command) CommandSchema {
	schema := CommandSchema{
		Name:        cmd.Name(),
		Path:        cmd.CommandPath(),
		Use:         cmd.Use,
		Description: cmd.Short,
		Long:        cmd.Long,
		Aliases:     cmd.Aliases,
		ValidArgs:   cmd.ValidArgs,
		Flags:       extractFlags(cmd),
	}

	subs := cmd.Commands()
	sort.Slice(subs, func(i, j int) bool { return subs[i].Name() < subs[j].Name() })
	for _, sub := range subs {
		if sub.Name() == "help" || sub.Name() == "completion" || sub.Hidden {
			continue
		}
		schema.Subcommands = append(schema.Subcommands, GenerateSchema(sub))
	}

	return schema
}

func extractFlags(cmd *cobra.Command) []FlagSchema {
	var flags []FlagSchema

	visit := func(inherited bool) func(*pflag.Flag) {
		return func(f *pflag.Flag) {
			if f.Name == helpJSONFlag || f.Name == "help" || f.Hidden {
				return
			}
			flags = append(flags, flagToSchema(f, inherited))
		}
	}
	cmd.LocalFlags().VisitAll(visit(false))
	cmd.InheritedFlags().VisitAll(visit(true))

	return flags
}

func flagToSchema(f *pflag.Flag, inherited bool) FlagSchema {
	schema := FlagSchema{
		Name:        f.Name,
		Shorthand:   f.Shorthand,
		Type:        f.Value.Type(),
		Default:     f.DefValue,
		Description: f.Usage,
		Inherited:   inherited,
	}

	// MarkFlagRequired records the requirement on the flag itself.
	if vals, ok := f.Annotations[cobra.BashCompOneRequiredFlag]; ok && len(vals) > 0 && vals[0] == "true" {
		schema.Required = true
	}

	return schema
}

// WriteSchema encodes the schema of cmd as indented JSON.
func WriteSchema(w io.Writer, cmd *cobra.Command) error {
	output, err := json.MarshalIndent(GenerateSchema(cmd), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func AddHelpJSONFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(helpJSONFlag, false, "Output command schema as JSON")
}

// CheckHelpJSON prints the schema of the addressed command and exits when
// --help-json is present. It runs before Execute so argument validation does
// not reject an incomplete invocation.
func CheckHelpJSON(rootCmd *cobra.Command) {
	target, ok := helpJSONTarget(rootCmd, os.Args[1:])
	if !ok {
		return
	}
	if err := WriteSchema(os.Stdout, target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func helpJSONTarget(rootCmd *cobra.Command, args []string) (*cobra.Command, bool) {
	for i, arg := range args {
		if arg == "--"+helpJSONFlag {
			return findTargetCommand(rootCmd, args[:i]), true
		}
	}
	return nil, false
}

func findTargetCommand(cmd *cobra.Command, args []string) *cobra.Command {
	if len(args) == 0 {
		return cmd
	}

	for _, sub := range cmd.Commands() {
		if sub.Name() == args[0] || sub.HasAlias(args[0]) {
			return findTargetCommand(sub, args[1:])
		}
	}

	return cmd
}
