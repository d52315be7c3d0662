package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecofinds/catalogue-service/internal/database"
	"github.com/ecofinds/catalogue-service/internal/fetch"
	"github.com/ecofinds/catalogue-service/internal/pipeline"
	"github.com/ecofinds/catalogue-service/internal/store"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <feed-url>",
	Short: "Run the full import pipeline for a feed URL",
	Long: `Fetch an XML shopping feed, normalize its items into canonical products,
classify sustainability tags, and upsert the results into the catalogue.
Re-importing the same feed overwrites products by id.`,
	Example: `  catalogue-service import https://example.com/google-shopping.xml`,
	Args:    cobra.ExactArgs(1),
	RunE:    runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	feedURL := args[0]
	ctx := context.Background()

	cat := store.NewPostgres(database.Pool())
	importer := pipeline.NewImporter(cat, fetch.NewClient(cfg.Fetch.Timeout), *logger)

	result, err := importer.Run(ctx, feedURL)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tTAGS")
	for _, p := range result.Products {
		price := "-"
		if p.Price != nil {
			price = fmt.Sprintf("%.2f", *p.Price)
			if p.Currency != nil {
				price += " " + *p.Currency
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", p.ID, p.Title, price, p.Tags)
	}
	w.Flush()

	fmt.Printf("\nImported %d products from %s\n", result.Count, result.FeedURL)
	return nil
}
