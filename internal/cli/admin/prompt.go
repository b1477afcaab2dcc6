package admin

import (
	"fmt"

	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/repository"
	"github.com/media-confidence/aifaq/internal/service"
	"github.com/spf13/cobra"
)

func PromptCmd() *cobra.Command {
	var builtin bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the assistant instruction",
		Long:  "Print the system instruction the chat relay sends, rendered from the catalog in the store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if builtin {
				fmt.Fprint(cmd.OutOrStdout(), service.BuildSystemPrompt(domain.DefaultCatalog()))
				return nil
			}

			e, err := loadEnv(nil)
			if err != nil {
				return err
			}
			ctx := e.logger.WithContext(cmd.Context())

			pool, err := e.openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			catalog := service.NewCatalogService(repository.NewDomainRepository(pool), repository.NewKeywordRepository(pool))
			if err := catalog.Refresh(ctx); err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), catalog.SystemPrompt())
			return nil
		},
	}

	cmd.Flags().BoolVar(&builtin, "builtin", false, "Render from the built-in default catalog without connecting to the database")

	return cmd
}
