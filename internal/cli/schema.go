// Package cli holds helpers shared by the aifaqd commands: the default
// subcommand and the --help-json command schema.
package cli

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	helpJSONFlag = "help-json"

	// envAnnotation names the environment variable a flag overrides.
	envAnnotation = "aifaqd_env"
	// defaultAnnotation names the subcommand run when none is given.
	defaultAnnotation = "aifaqd_default_subcommand"
	// cobra stores MarkFlagsMutuallyExclusive groups under this flag annotation.
	exclusiveAnnotation = "cobra_annotation_mutually_exclusive"
)

type FlagSchema struct {
	Name          string   `json:"name"`
	Shorthand     string   `json:"shorthand,omitempty"`
	Type          string   `json:"type"`
	Default       string   `json:"default,omitempty"`
	Description   string   `json:"description,omitempty"`
	Env           string   `json:"env,omitempty"`
	ExclusiveWith []string `json:"exclusiveWith,omitempty"`
	Required      bool     `json:"required"`
}

type CommandSchema struct {
	Name              string          `json:"name"`
	Use               string          `json:"use,omitempty"`
	Description       string          `json:"description,omitempty"`
	Long              string          `json:"long,omitempty"`
	DefaultSubcommand string          `json:"defaultSubcommand,omitempty"`
	Flags             []FlagSchema    `json:"flags,omitempty"`
	Subcommands       []CommandSchema `json:"subcommands,omitempty"`
}

// GenerateSchema describes cmd and its visible subcommands.
func GenerateSchema(cmd *cobra.Command) CommandSchema {
	schema := CommandSchema{
		Name:              cmd.Name(),
		Use:               cmd.Use,
		Description:       cmd.Short,
		Long:              cmd.Long,
		DefaultSubcommand: cmd.Annotations[defaultAnnotation],
	}

	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Name == helpJSONFlag || f.Name == "help" {
			return
		}
		schema.Flags = append(schema.Flags, flagSchema(f))
	})

	for _, sub := range cmd.Commands() {
		if sub.Name() == "help" || sub.Name() == "completion" || sub.Hidden {
			continue
		}
		schema.Subcommands = append(schema.Subcommands, GenerateSchema(sub))
	}
	return schema
}

func flagSchema(f *pflag.Flag) FlagSchema {
	s := FlagSchema{
		Name:        f.Name,
		Shorthand:   f.Shorthand,
		Type:        f.Value.Type(),
		Default:     f.DefValue,
		Description: f.Usage,
	}
	if env := f.Annotations[envAnnotation]; len(env) > 0 {
		s.Env = env[0]
	}
	if req := f.Annotations[cobra.BashCompOneRequiredFlag]; len(req) > 0 && req[0] == "true" {
		s.Required = true
	}

	seen := map[string]bool{f.Name: true}
	for _, group := range f.Annotations[exclusiveAnnotation] {
		for _, name := range strings.Fields(group) {
			if !seen[name] {
				seen[name] = true
				s.ExclusiveWith = append(s.ExclusiveWith, name)
			}
		}
	}
	sort.Strings(s.ExclusiveWith)
	return s
}

// WriteSchema writes the indented JSON schema of cmd to w.
func WriteSchema(w io.Writer, cmd *cobra.Command) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GenerateSchema(cmd))
}

// AddHelpJSONFlag registers --help-json on cmd and all its subcommands.
func AddHelpJSONFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(helpJSONFlag, false, "Output command schema as JSON")
}

// BindEnv records that flag on cmd overrides the environment variable env.
func BindEnv(cmd *cobra.Command, flag, env string) {
	_ = cmd.Flags().SetAnnotation(flag, envAnnotation, []string{env})
}

// SetDefaultSubcommand makes name run when root is invoked without arguments.
func SetDefaultSubcommand(root *cobra.Command, name string) {
	if root.Annotations == nil {
		root.Annotations = map[string]string{}
	}
	root.Annotations[defaultAnnotation] = name
}

// ResolveArgs returns args with the default subcommand filled in when empty.
func ResolveArgs(root *cobra.Command, args []string) []string {
	if len(args) == 0 {
		if name := root.Annotations[defaultAnnotation]; name != "" {
			return []string{name}
		}
	}
	return args
}

// HandleHelpJSON writes the schema of the command addressed by args when
// --help-json is present, before cobra validates arguments. It reports
// whether the schema was written.
func HandleHelpJSON(root *cobra.Command, args []string, w io.Writer) (bool, error) {
	for i, arg := range args {
		if arg == "--"+helpJSONFlag {
			return true, WriteSchema(w, findTargetCommand(root, args[:i]))
		}
	}
	return false, nil
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
