package main

import (
	"fmt"
	"os"

	"github.com/media-confidence/aifaq/internal/cli"
	"github.com/media-confidence/aifaq/internal/cli/admin"
)

func main() {
	rootCmd := admin.RootCmd()
	args := cli.ResolveArgs(rootCmd, os.Args[1:])

	if handled, err := cli.HandleHelpJSON(rootCmd, args, os.Stdout); handled {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating schema: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
