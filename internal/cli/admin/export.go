package admin

import (
	"fmt"

	"github.com/media-confidence/aifaq/internal/repository"
	"github.com/media-confidence/aifaq/internal/seed"
	"github.com/spf13/cobra"
)

func ExportCmd() *cobra.Command {
	var (
		file  string
		s3Key string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current catalog and FAQs as a seed document",
		Long:  "Export every domain, keyword and FAQ as YAML that the seed command accepts. Writes to stdout unless --file or --s3-key is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			exporter := seed.NewExporter(
				repository.NewFAQRepository(pool),
				repository.NewDomainRepository(pool),
				repository.NewKeywordRepository(pool),
			)
			doc, err := exporter.Export(ctx)
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}
			data, err := seed.Encode(doc)
			if err != nil {
				return err
			}

			if err := writeSeed(ctx, cmd.OutOrStdout(), file, s3Key, data, e.storeOpener()); err != nil {
				return err
			}
			if file != "" || s3Key != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d domains, %d keywords, %d FAQs\n",
					len(doc.Domains), len(doc.Keywords), len(doc.FAQs))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to write the YAML document to")
	cmd.Flags().StringVar(&s3Key, "s3-key", "", "Object key to upload the document to in the seed bucket")
	cmd.MarkFlagsMutuallyExclusive("file", "s3-key")

	return cmd
}
