package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleximart/fleximart-datakit/internal/catalog"
	"github.com/fleximart/fleximart-datakit/internal/reports"
)

var (
	catalogFile         string
	catalogDropExisting bool
	catalogMaxPrice     float64
	catalogMinRating    float64
	reviewProduct       string
	reviewUser          string
	reviewRating        int
	reviewComment       string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with the MongoDB product catalog",
	Long: `Work with the product catalog document store: one MongoDB document
per product with embedded customer reviews. The catalog carries the
same products as the warehouse dimension, so results line up across
stores.`,
}

var catalogLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load product documents from a JSON file",
	Long: `Load product documents from a JSON array file into the catalog
collection. Use --drop-existing to replace the collection contents
instead of appending.

Example:
  fleximart-datakit catalog load --file products_catalog.json --drop-existing`,
	RunE: runCatalogLoad,
}

var catalogElectronicsCmd = &cobra.Command{
	Use:   "electronics",
	Short: "List Electronics products under a price",
	RunE:  runCatalogElectronics,
}

var catalogTopRatedCmd = &cobra.Command{
	Use:   "top-rated",
	Short: "List products by average review rating",
	RunE:  runCatalogTopRated,
}

var catalogAddReviewCmd = &cobra.Command{
	Use:   "add-review",
	Short: "Add a review to a product",
	Long: `Add a review to the product with the given business code.

Example:
  fleximart-datakit catalog add-review --product ELEC001 --user rahul.s \
    --rating 5 --comment "Great product!"`,
	RunE: runCatalogAddReview,
}

var catalogAvgPriceCmd = &cobra.Command{
	Use:   "avg-price",
	Short: "Show average price and product count per category",
	RunE:  runCatalogAvgPrice,
}

func init() {
	catalogLoadCmd.Flags().StringVar(&catalogFile, "file", "products_catalog.json",
		"path to the product catalog JSON file")
	catalogLoadCmd.Flags().BoolVar(&catalogDropExisting, "drop-existing", false,
		"drop the collection before loading")

	catalogElectronicsCmd.Flags().Float64Var(&catalogMaxPrice, "max-price", 50000,
		"upper price bound (exclusive)")

	catalogTopRatedCmd.Flags().Float64Var(&catalogMinRating, "min-rating", 4.0,
		"minimum average rating")

	catalogAddReviewCmd.Flags().StringVar(&reviewProduct, "product", "",
		"product business code, e.g. ELEC001 (required)")
	catalogAddReviewCmd.Flags().StringVar(&reviewUser, "user", "",
		"reviewer name (required)")
	catalogAddReviewCmd.Flags().IntVar(&reviewRating, "rating", 0,
		"rating from 1 to 5 (required)")
	catalogAddReviewCmd.Flags().StringVar(&reviewComment, "comment", "",
		"review text")

	catalogCmd.AddCommand(catalogLoadCmd)
	catalogCmd.AddCommand(catalogElectronicsCmd)
	catalogCmd.AddCommand(catalogTopRatedCmd)
	catalogCmd.AddCommand(catalogAddReviewCmd)
	catalogCmd.AddCommand(catalogAvgPriceCmd)
}

// connectCatalog validates the Mongo configuration and connects.
// Callers must Close the catalog when done.
func connectCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if err := cfg.ValidateCatalog(); err != nil {
		return nil, err
	}
	cat, err := catalog.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func runCatalogLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cat, err := connectCatalog(ctx)
	if err != nil {
		return err
	}
	defer cat.Close(ctx)

	n, err := cat.ImportFile(ctx, catalogFile, catalogDropExisting)
	if err != nil {
		return err
	}

	cmd.Printf("Loaded %d products into %s.%s\n", n, cfg.Mongo.Database, cfg.Mongo.Collection)
	return nil
}

func runCatalogElectronics(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cat, err := connectCatalog(ctx)
	if err != nil {
		return err
	}
	defer cat.Close(ctx)

	products, err := cat.ElectronicsUnder(ctx, catalogMaxPrice)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		cmd.Printf("No Electronics products under %.2f\n", catalogMaxPrice)
		return nil
	}

	res := &reports.Result{
		Name:    "catalog-electronics",
		Columns: []string{"name", "price", "stock"},
	}
	for _, p := range products {
		res.Rows = append(res.Rows, []string{
			p.Name,
			fmt.Sprintf("%.2f", p.Price),
			fmt.Sprintf("%d", p.Stock),
		})
	}
	return reports.Render(cmd.OutOrStdout(), res, reports.FormatTable)
}

func runCatalogTopRated(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cat, err := connectCatalog(ctx)
	if err != nil {
		return err
	}
	defer cat.Close(ctx)

	products, err := cat.TopRated(ctx, catalogMinRating)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		cmd.Printf("No products with average rating %.1f or better\n", catalogMinRating)
		return nil
	}

	res := &reports.Result{
		Name:    "catalog-top-rated",
		Columns: []string{"product_id", "name", "avg_rating"},
	}
	for _, p := range products {
		res.Rows = append(res.Rows, []string{
			p.ProductID,
			p.Name,
			fmt.Sprintf("%.2f", p.AvgRating),
		})
	}
	return reports.Render(cmd.OutOrStdout(), res, reports.FormatTable)
}

func runCatalogAddReview(cmd *cobra.Command, args []string) error {
	if reviewProduct == "" {
		return fmt.Errorf("product id is required (--product)")
	}
	if reviewUser == "" {
		return fmt.Errorf("reviewer name is required (--user)")
	}
	if reviewRating < 1 || reviewRating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	ctx := context.Background()
	cat, err := connectCatalog(ctx)
	if err != nil {
		return err
	}
	defer cat.Close(ctx)

	matched, _, err := cat.AddReview(ctx, reviewProduct, catalog.Review{
		User:    reviewUser,
		Rating:  reviewRating,
		Comment: reviewComment,
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		return fmt.Errorf("no product with id %s", reviewProduct)
	}

	cmd.Printf("Review added to %s\n", reviewProduct)
	return nil
}

func runCatalogAvgPrice(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cat, err := connectCatalog(ctx)
	if err != nil {
		return err
	}
	defer cat.Close(ctx)

	categories, err := cat.AvgPriceByCategory(ctx)
	if err != nil {
		return err
	}

	res := &reports.Result{
		Name:    "catalog-avg-price",
		Columns: []string{"category", "avg_price", "product_count"},
	}
	for _, c := range categories {
		res.Rows = append(res.Rows, []string{
			c.Category,
			fmt.Sprintf("%.2f", c.AvgPrice),
			fmt.Sprintf("%d", c.ProductCount),
		})
	}
	return reports.Render(cmd.OutOrStdout(), res, reports.FormatTable)
}
