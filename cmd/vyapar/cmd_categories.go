package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vyapar/internal/categories"
)

var (
	categorySearch string
	categoryActive string
	categoryForm   categories.Form
)

// vyapar categories:list
var categoriesListCmd = &cobra.Command{
	Use:   "categories:list",
	Short: "List categories with search and visibility filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		list, err := c.categories.List(cmd.Context())
		if err != nil {
			return err
		}
		list = categories.Filter{Search: categorySearch, Active: categoryActive}.Apply(list)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSLUG\tPRODUCTS\tORDER\tACTIVE")
		for _, cat := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%t\n",
				cat.ID, cat.Name, cat.Slug, cat.ProductCount, cat.DisplayOrder, cat.IsActive)
		}
		w.Flush()
		return nil
	},
}

// vyapar categories:create
var categoriesCreateCmd = &cobra.Command{
	Use:   "categories:create",
	Short: "Create a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		cat, err := c.categories.Create(cmd.Context(), &categoryForm)
		if err != nil {
			return err
		}
		fmt.Printf("Created category #%d (%s).\n", cat.ID, cat.Slug)
		return nil
	},
}

// vyapar categories:update
var categoriesUpdateCmd = &cobra.Command{
	Use:   "categories:update <id>",
	Short: "Update a category",
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

		cat, err := c.categories.Update(cmd.Context(), id, &categoryForm)
		if err != nil {
			return err
		}
		fmt.Printf("Updated category #%d.\n", cat.ID)
		return nil
	},
}

// vyapar categories:toggle
var categoriesToggleCmd = &cobra.Command{
	Use:   "categories:toggle <id>",
	Short: "Activate or deactivate a category",
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

		err = c.categories.ToggleActive(cmd.Context(), id)
		if errors.Is(err, categories.ErrDeclined) {
			fmt.Println("Aborted.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Toggled category #%d.\n", id)
		return nil
	},
}

// vyapar categories:delete
var categoriesDeleteCmd = &cobra.Command{
	Use:   "categories:delete <id>",
	Short: "Delete a category",
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

		err = c.categories.Delete(cmd.Context(), id)
		if errors.Is(err, categories.ErrDeclined) {
			fmt.Println("Aborted.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Deleted category #%d.\n", id)
		return nil
	},
}

func init() {
	categoriesListCmd.Flags().StringVar(&categorySearch, "search", "", "match name, slug or description")
	categoriesListCmd.Flags().StringVar(&categoryActive, "active", "", "filter by visibility (true/false)")

	for _, cmd := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		cmd.Flags().StringVar(&categoryForm.Name, "name", "", "category name")
		cmd.Flags().StringVar(&categoryForm.Slug, "slug", "", "URL slug")
		cmd.Flags().StringVar(&categoryForm.Description, "description", "", "description")
		cmd.Flags().StringVar(&categoryForm.ImageURL, "image-url", "", "image URL")
		cmd.Flags().IntVar(&categoryForm.DisplayOrder, "order", 0, "display order")
		cmd.Flags().BoolVar(&categoryForm.IsActive, "active", true, "visible in the storefront")
	}
}
