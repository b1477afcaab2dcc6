package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/repository"
	"github.com/media-confidence/aifaq/internal/service"
	"github.com/spf13/cobra"
)

func FAQCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faq",
		Short: "Inspect FAQ entries",
	}

	cmd.AddCommand(FAQListCmd())

	return cmd
}

func FAQListCmd() *cobra.Command {
	var filter struct {
		domain, keyword, search, status string
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List FAQ entries",
		Long:  "List FAQ entries of every status, ordered by domain slug then display order. Filters combine with AND.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")

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

			svc := service.NewFAQService(
				repository.NewFAQRepository(pool),
				repository.NewDomainRepository(pool),
				repository.NewKeywordRepository(pool),
				repository.NewTxRunner(pool),
			)
			faqs, err := svc.List(ctx, service.FAQFilter{
				DomainSlug:      filter.domain,
				KeywordCategory: filter.keyword,
				Search:          filter.search,
				Status:          domain.FAQStatus(filter.status),
			})
			if err != nil {
				return fmt.Errorf("failed to list FAQs: %w", err)
			}

			return printFAQs(cmd.OutOrStdout(), outputFormat, faqs)
		},
	}

	cmd.Flags().StringVar(&filter.domain, "domain", "", "Domain slug")
	cmd.Flags().StringVar(&filter.keyword, "keyword", "", "Keyword category")
	cmd.Flags().StringVar(&filter.search, "search", "", "Case-insensitive text in question or answer")
	cmd.Flags().StringVar(&filter.status, "status", "", "draft or published (default: any)")
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func printFAQs(w io.Writer, format string, faqs []*domain.FAQ) error {
	if format == "json" {
		items := make([]map[string]interface{}, len(faqs))
		for i, f := range faqs {
			domainSlug := ""
			if f.Domain != nil {
				domainSlug = f.Domain.Slug
			}
			keywords := make([]string, 0, len(f.Keywords))
			for _, k := range f.Keywords {
				keywords = append(keywords, k.Slug)
			}
			items[i] = map[string]interface{}{
				"id":         f.ID,
				"domain":     domainSlug,
				"question":   f.Question,
				"status":     f.Status,
				"order":      f.SortOrder,
				"keywords":   keywords,
				"created_at": f.CreatedAt,
			}
		}
		jsonBytes, err := json.MarshalIndent(map[string]interface{}{"items": items, "count": len(items)}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(jsonBytes))
		return err
	}

	if len(faqs) == 0 {
		_, err := fmt.Fprintln(w, "No FAQs found")
		return err
	}
	for _, f := range faqs {
		domainSlug := "-"
		if f.Domain != nil {
			domainSlug = f.Domain.Slug
		}
		keywords := make([]string, 0, len(f.Keywords))
		for _, k := range f.Keywords {
			keywords = append(keywords, k.Category)
		}
		fmt.Fprintf(w, "%s  [%s #%d %s] %s", f.ID, domainSlug, f.SortOrder, f.Status, f.Question)
		if len(keywords) > 0 {
			fmt.Fprintf(w, "  (%s)", strings.Join(keywords, ", "))
		}
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintf(w, "\n%d FAQs\n", len(faqs))
	return err
}
