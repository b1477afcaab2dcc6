package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *cobra.Command {
	root := &cobra.Command{Use: "tool", Short: "root"}
	AddHelpJSONFlag(root)

	run := &cobra.Command{Use: "run", Short: "run it", Run: func(*cobra.Command, []string) {}}
	run.Flags().StringP("port", "p", "", "port")
	BindEnv(run, "port", "TOOL_PORT")

	load := &cobra.Command{Use: "load", Aliases: []string{"ld"}, Short: "load it", Run: func(*cobra.Command, []string) {}}
	load.Flags().String("file", "", "file")
	load.Flags().String("key", "", "key")
	load.Flags().String("name", "", "name")
	load.MarkFlagsMutuallyExclusive("file", "key")
	_ = load.MarkFlagRequired("name")

	hidden := &cobra.Command{Use: "secret", Hidden: true, Run: func(*cobra.Command, []string) {}}

	root.AddCommand(run, load, hidden)
	SetDefaultSubcommand(root, "run")
	return root
}

func findFlag(t *testing.T, flags []FlagSchema, name string) FlagSchema {
	t.Helper()
	for _, f := range flags {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("flag %q not in schema", name)
	return FlagSchema{}
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema(testTree())

	assert.Equal(t, "tool", schema.Name)
	assert.Equal(t, "run", schema.DefaultSubcommand)
	assert.Empty(t, schema.Flags, "help-json is not reported")
	require.Len(t, schema.Subcommands, 2)

	var load, run CommandSchema
	for _, sub := range schema.Subcommands {
		switch sub.Name {
		case "load":
			load = sub
		case "run":
			run = sub
		}
	}

	port := findFlag(t, run.Flags, "port")
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "TOOL_PORT", port.Env)
	assert.False(t, port.Required)

	assert.Equal(t, []string{"key"}, findFlag(t, load.Flags, "file").ExclusiveWith)
	assert.Equal(t, []string{"file"}, findFlag(t, load.Flags, "key").ExclusiveWith)
	name := findFlag(t, load.Flags, "name")
	assert.True(t, name.Required)
	assert.Empty(t, name.ExclusiveWith)
}

func TestHandleHelpJSON(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		var out bytes.Buffer
		handled, err := HandleHelpJSON(testTree(), []string{"run", "-p", "9000"}, &out)
		require.NoError(t, err)
		assert.False(t, handled)
		assert.Empty(t, out.String())
	})

	t.Run("subcommand by alias", func(t *testing.T) {
		var out bytes.Buffer
		handled, err := HandleHelpJSON(testTree(), []string{"ld", "--help-json"}, &out)
		require.NoError(t, err)
		assert.True(t, handled)

		var schema CommandSchema
		require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
		assert.Equal(t, "load", schema.Name)
		assert.Len(t, schema.Flags, 3)
	})

	t.Run("unknown subcommand falls back to root", func(t *testing.T) {
		var out bytes.Buffer
		handled, err := HandleHelpJSON(testTree(), []string{"nope", "--help-json"}, &out)
		require.NoError(t, err)
		assert.True(t, handled)
		assert.Contains(t, out.String(), `"name": "tool"`)
	})
}

func TestResolveArgs(t *testing.T) {
	root := testTree()

	assert.Equal(t, []string{"run"}, ResolveArgs(root, nil))
	assert.Equal(t, []string{"load", "--file", "x"}, ResolveArgs(root, []string{"load", "--file", "x"}))
	assert.Empty(t, ResolveArgs(&cobra.Command{Use: "bare"}, nil))
}
