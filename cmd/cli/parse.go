package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecofinds/catalogue-service/internal/feed"
	"github.com/ecofinds/catalogue-service/internal/parsers/charset"
	xmlparser "github.com/ecofinds/catalogue-service/internal/parsers/xml"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a local feed file without touching the database",
	Long: `Parse a local XML feed file through the full extraction and mapping path
(schema variant detection, field mapping, price parsing, tag classification)
and print the resulting products. Useful for checking how a feed will import
before pointing the pipeline at it.`,
	Example: `  catalogue-service parse ./testdata/shopping-feed.xml`,
	Args:    cobra.ExactArgs(1),
	RunE:    runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	body, err := charset.DecodeAuto(raw)
	if err != nil {
		return fmt.Errorf("failed to decode file: %w", err)
	}

	doc, err := xmlparser.Parse(body)
	if err != nil {
		return err
	}

	items := feed.ExtractItems(doc)
	products, dropped := feed.MapItems(items)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tBRAND\tPRICE\tTAGS\tURL")
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
			p.ID, p.Title, brand, price, strings.Join(p.Tags, ","), p.URL)
	}
	w.Flush()

	fmt.Printf("\n%d raw items, %d products, %d dropped\n", len(items), len(products), dropped)
	return nil
}
