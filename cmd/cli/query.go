package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecofinds/catalogue-service/internal/database"
	"github.com/ecofinds/catalogue-service/internal/store"
)

var (
	queryQ        string
	queryBrand    string
	queryTag      string
	queryMinPrice string
	queryMaxPrice string
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the product catalogue",
	Long: `Run a filtered read over the catalogue with the same semantics as the
HTTP /products endpoint: free-text match on title or brand, brand substring,
exact tag membership, and inclusive price bounds. Unparsable price bounds are
skipped silently.`,
	Example: `  catalogue-service query --q tote --tag Upcycled
  catalogue-service query --min-price 10 --max-price 50`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryQ, "q", "", "Free-text filter matched against title or brand")
	queryCmd.Flags().StringVar(&queryBrand, "brand", "", "Brand substring filter")
	queryCmd.Flags().StringVar(&queryTag, "tag", "", "Exact sustainability tag (Recycled, Upcycled, Handmade, Organic)")
	queryCmd.Flags().StringVar(&queryMinPrice, "min-price", "", "Inclusive minimum price")
	queryCmd.Flags().StringVar(&queryMaxPrice, "max-price", "", "Inclusive maximum price")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cat := store.NewPostgres(database.Pool())
	products, err := cat.QueryProducts(ctx, store.Filters{
		Q:        strings.ToLower(strings.TrimSpace(queryQ)),
		Brand:    strings.ToLower(strings.TrimSpace(queryBrand)),
		Tag:      strings.TrimSpace(queryTag),
		MinPrice: queryMinPrice,
		MaxPrice: queryMaxPrice,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tBRAND\tPRICE\tTAGS\tIMPORTED")
	for _, p := range products {
		brand := "-"
		if p.Brand != nil {
			brand = *p.Brand
		}
		price := "-"
		if p.Price != nil {
			price = fmt.Sprintf("%.2f", *p.Price)
			if p.Currency != nil {
				price += " " + *p.Currency
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, brand, price,
			strings.Join(p.Tags, ","),
			p.ImportedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Printf("\n%d products\n", len(products))
	return nil
}
