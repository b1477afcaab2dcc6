package admin

import (
	"github.com/media-confidence/aifaq/internal/cli"
	"github.com/spf13/cobra"
)

// RootCmd builds the aifaqd command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "aifaqd",
		Short:        "AI problem-solving FAQ server",
		Long:         "aifaqd serves the FAQ site and diagnosis chat, and manages the FAQ catalog",
		SilenceUsage: true,
	}

	cli.AddHelpJSONFlag(root)
	root.AddCommand(ServeCmd())
	root.AddCommand(SeedCmd())
	root.AddCommand(ExportCmd())
	root.AddCommand(FAQCmd())
	root.AddCommand(PromptCmd())
	cli.SetDefaultSubcommand(root, "serve")
	return root
}
