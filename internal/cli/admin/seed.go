package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/media-confidence/aifaq/internal/repository"
	"github.com/media-confidence/aifaq/internal/seed"
	"github.com/media-confidence/aifaq/internal/service"
	"github.com/spf13/cobra"
)

const seedContentType = "application/yaml"

// seedStore is the object storage a seed document can be read from or written to.
type seedStore interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	EnsureBucket(ctx context.Context) error
}

type storeOpener func(ctx context.Context) (seedStore, error)

func (e *env) storeOpener() storeOpener {
	return func(ctx context.Context) (seedStore, error) {
		client, err := e.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

var errNoSeedSource = errors.New("one of --file or --s3-key is required")

// readSeed loads the raw document from a file or an object key.
func readSeed(ctx context.Context, file, s3Key string, open storeOpener) ([]byte, error) {
	switch {
	case file != "" && s3Key != "":
		return nil, errors.New("--file and --s3-key are mutually exclusive")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		return data, nil
	case s3Key != "":
		store, err := open(ctx)
		if err != nil {
			return nil, err
		}
		data, err := store.GetObject(ctx, s3Key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch seed object %q: %w", s3Key, err)
		}
		return data, nil
	default:
		return nil, errNoSeedSource
	}
}

// writeSeed stores data at file or s3Key, or writes it to stdout when neither is set.
func writeSeed(ctx context.Context, stdout io.Writer, file, s3Key string, data []byte, open storeOpener) error {
	switch {
	case file != "" && s3Key != "":
		return errors.New("--file and --s3-key are mutually exclusive")
	case file != "":
		if err := os.WriteFile(file, data, 0o644); err != nil {
			return fmt.Errorf("failed to write seed file: %w", err)
		}
		return nil
	case s3Key != "":
		store, err := open(ctx)
		if err != nil {
			return err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to prepare seed bucket: %w", err)
		}
		if err := store.PutObject(ctx, s3Key, data, seedContentType); err != nil {
			return fmt.Errorf("failed to upload seed object %q: %w", s3Key, err)
		}
		return nil
	default:
		_, err := stdout.Write(data)
		return err
	}
}

func SeedCmd() *cobra.Command {
	var (
		file  string
		s3Key string
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load domains, keywords and FAQs from a YAML document",
		Long: "Load a seed document into the store. Domains and keywords are upserted by slug; " +
			"FAQs are created in document order. With --reset every FAQ, keyword and domain is deleted first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, file, s3Key, reset)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the seed YAML file")
	cmd.Flags().StringVar(&s3Key, "s3-key", "", "Object key of the seed document in the seed bucket")
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete all existing FAQs, keywords and domains before loading")
	cmd.MarkFlagsMutuallyExclusive("file", "s3-key")

	return cmd
}

func runSeed(cmd *cobra.Command, file, s3Key string, reset bool) error {
	e, err := loadEnv(nil)
	if err != nil {
		return err
	}
	ctx := e.logger.WithContext(cmd.Context())

	data, err := readSeed(ctx, file, s3Key, e.storeOpener())
	if err != nil {
		return err
	}
	doc, err := seed.Parse(data)
	if err != nil {
		return err
	}

	pool, err := e.openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	seeder := seed.NewSeeder(repository.NewTxRunner(pool), &service.DefaultUUIDGenerator{})
	result, err := seeder.Apply(ctx, doc, seed.Options{Reset: reset})
	if err != nil {
		return fmt.Errorf("failed to apply seed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d domains, %d keywords, %d FAQs (%d skipped)\n",
		result.Domains, result.Keywords, result.FAQs, result.Skipped)
	return nil
}
