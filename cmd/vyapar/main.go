package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	closeAudit()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vyapar",
	Short: "Vyapar is an e-commerce back-office console",
	Long:  "Vyapar is the operator console for the store backend: orders, catalogue, categories, dashboard and settings over the admin API.",
}

func init() {
	// Auth
	rootCmd.AddCommand(authLoginCmd)
	rootCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authWhoamiCmd)
	rootCmd.AddCommand(authChangePasswordCmd)

	// Dashboard
	rootCmd.AddCommand(dashboardCmd)

	// Orders
	rootCmd.AddCommand(ordersListCmd)
	rootCmd.AddCommand(ordersShowCmd)
	rootCmd.AddCommand(ordersStatsCmd)
	rootCmd.AddCommand(ordersStatusCmd)
	rootCmd.AddCommand(ordersTrackCmd)
	rootCmd.AddCommand(ordersCancelCmd)
	rootCmd.AddCommand(ordersPaidCmd)
	rootCmd.AddCommand(ordersExportCmd)

	// Products
	rootCmd.AddCommand(productsListCmd)
	rootCmd.AddCommand(productsShowCmd)
	rootCmd.AddCommand(productsCreateCmd)
	rootCmd.AddCommand(productsUpdateCmd)
	rootCmd.AddCommand(productsToggleActiveCmd)
	rootCmd.AddCommand(productsToggleFeaturedCmd)
	rootCmd.AddCommand(productsDeleteCmd)
	rootCmd.AddCommand(productsUploadImageCmd)
	rootCmd.AddCommand(productsSetPrimaryImageCmd)
	rootCmd.AddCommand(productsDeleteImageCmd)

	// Categories
	rootCmd.AddCommand(categoriesListCmd)
	rootCmd.AddCommand(categoriesCreateCmd)
	rootCmd.AddCommand(categoriesUpdateCmd)
	rootCmd.AddCommand(categoriesToggleCmd)
	rootCmd.AddCommand(categoriesDeleteCmd)

	// Settings
	rootCmd.AddCommand(settingsListCmd)
	rootCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsSaveCmd)
}
