package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vyapar/config"
	"github.com/shashiranjanraj/vyapar/internal/products"
)

var (
	productSearch   string
	productCategory int64
	productActive   string
	productLowStock bool
	productPage     int
	productFormPath string
	imagePrimary    bool
	imageOrder      int
)

// readProductForm loads the create/update payload from a JSON file, so a
// full product with variants does not have to be expressed in flags.
func readProductForm(path string) (*products.Form, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var form products.Form
	if err := json.Unmarshal(raw, &form); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &form, nil
}

// vyapar products:list
var productsListCmd = &cobra.Command{
	Use:   "products:list",
	Short: "Browse the catalogue with search, category and stock filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		filter := products.Filter{
			Search:       productSearch,
			CategoryID:   productCategory,
			Active:       productActive,
			LowStockOnly: productLowStock,
		}
		page, err := c.products.Browse(cmd.Context(), filter, productPage, config.ItemsPerPage())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSKU\tPRICE\tSTOCK\tACTIVE\tFEATURED")
		for _, p := range page.Items {
			stock := fmt.Sprintf("%d", p.StockQuantity)
			if p.LowStock() {
				stock += " (low)"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%t\t%t\n",
				p.ID, p.Name, p.SKU, p.Price.Float(), stock, p.IsActive, p.IsFeatured)
		}
		w.Flush()
		fmt.Printf("\nPage %d of %d (%d products)\n", page.Number, page.TotalPages, page.Total)

		// Best effort: decorate the list with the low-stock banner.
		if alert, err := c.products.LowStockAlert(cmd.Context()); err == nil && alert.Count > 0 {
			fmt.Printf("Warning: %d product(s) at or below their stock threshold.\n", alert.Count)
		}
		return nil
	},
}

// vyapar products:show
var productsShowCmd = &cobra.Command{
	Use:   "products:show <id>",
	Short: "Show one product with variants and images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		p, err := c.products.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)  slug=%s category=%d\n", p.Name, p.SKU, p.Slug, p.CategoryID)
		if p.SalePrice != nil {
			fmt.Printf("Price: %.2f (sale %.2f)\n", p.Price.Float(), p.SalePrice.Float())
		} else {
			fmt.Printf("Price: %.2f\n", p.Price.Float())
		}
		fmt.Printf("Stock: %d (threshold %d)  active=%t featured=%t\n",
			p.StockQuantity, p.LowStockThreshold, p.IsActive, p.IsFeatured)

		if len(p.Variants) > 0 {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "\nVARIANT SKU\tSIZE\tCOLOR\t+PRICE\tSTOCK")
			for _, v := range p.Variants {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\n",
					v.SKU, strVal(v.Size), strVal(v.Color), v.AdditionalPrice, v.StockQuantity)
			}
			w.Flush()
		}
		for _, img := range p.Images {
			marker := ""
			if img.IsPrimary {
				marker = " [primary]"
			}
			fmt.Printf("image #%d %s%s\n", img.ID, img.URL, marker)
		}
		return nil
	},
}

// vyapar products:create
var productsCreateCmd = &cobra.Command{
	Use:   "products:create",
	Short: "Create a product from a JSON form file",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}
		form, err := readProductForm(productFormPath)
		if err != nil {
			return err
		}

		p, err := c.products.Create(cmd.Context(), form)
		if err != nil {
			return err
		}
		fmt.Printf("Created product #%d (%s).\n", p.ID, p.SKU)
		return nil
	},
}

// vyapar products:update
var productsUpdateCmd = &cobra.Command{
	Use:   "products:update <id>",
	Short: "Update a product from a JSON form file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		form, err := readProductForm(productFormPath)
		if err != nil {
			return err
		}

		p, err := c.products.Update(cmd.Context(), id, form)
		if err != nil {
			return err
		}
		fmt.Printf("Updated product #%d.\n", p.ID)
		return nil
	},
}

// vyapar products:toggle-active
var productsToggleActiveCmd = &cobra.Command{
	Use:   "products:toggle-active <id>",
	Short: "Show or hide a product in the storefront",
	Args:  cobra.ExactArgs(1),
	RunE:  toggleProduct(func(c *console) toggleFn { return c.products.ToggleActive }),
}

// vyapar products:toggle-featured
var productsToggleFeaturedCmd = &cobra.Command{
	Use:   "products:toggle-featured <id>",
	Short: "Toggle a product's featured flag",
	Args:  cobra.ExactArgs(1),
	RunE:  toggleProduct(func(c *console) toggleFn { return c.products.ToggleFeatured }),
}

type toggleFn = func(ctx context.Context, id int64) (*products.Product, error)

func toggleProduct(pick func(*console) toggleFn) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		p, err := pick(c)(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("Product #%d: active=%t featured=%t.\n", p.ID, p.IsActive, p.IsFeatured)
		return nil
	}
}

// vyapar products:delete
var productsDeleteCmd = &cobra.Command{
	Use:   "products:delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		err = c.products.Delete(cmd.Context(), id)
		if errors.Is(err, products.ErrDeclined) {
			fmt.Println("Aborted.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Deleted product #%d.\n", id)
		return nil
	},
}

// vyapar products:upload-image
var productsUploadImageCmd = &cobra.Command{
	Use:   "products:upload-image <id> <file>",
	Short: "Upload an image for a product",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		img, err := c.products.UploadImage(cmd.Context(), id, filepath.Base(args[1]), f, imagePrimary, imageOrder)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded image #%d (%s).\n", img.ID, img.URL)
		return nil
	},
}

// vyapar products:set-primary-image
var productsSetPrimaryImageCmd = &cobra.Command{
	Use:   "products:set-primary-image <image-id>",
	Short: "Make an uploaded image the product's primary one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := c.products.SetPrimaryImage(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Image #%d is now primary.\n", id)
		return nil
	},
}

// vyapar products:delete-image
var productsDeleteImageCmd = &cobra.Command{
	Use:   "products:delete-image <image-id>",
	Short: "Remove an uploaded product image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := c.products.DeleteImage(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted image #%d.\n", id)
		return nil
	},
}

func strVal(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func init() {
	productsListCmd.Flags().StringVar(&productSearch, "search", "", "match name or SKU")
	productsListCmd.Flags().Int64Var(&productCategory, "category", 0, "filter by category id")
	productsListCmd.Flags().StringVar(&productActive, "active", "", "filter by visibility (true/false)")
	productsListCmd.Flags().BoolVar(&productLowStock, "low-stock", false, "only products at or below their threshold")
	productsListCmd.Flags().IntVar(&productPage, "page", 1, "page number")

	productsCreateCmd.Flags().StringVarP(&productFormPath, "file", "f", "product.json", "JSON form file")
	productsUpdateCmd.Flags().StringVarP(&productFormPath, "file", "f", "product.json", "JSON form file")

	productsUploadImageCmd.Flags().BoolVar(&imagePrimary, "primary", false, "mark as the primary image")
	productsUploadImageCmd.Flags().IntVar(&imageOrder, "order", 0, "display order")
}
