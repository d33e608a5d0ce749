package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vyapar/internal/settings"
)

var storeForm settings.StoreForm

// vyapar settings:list
var settingsListCmd = &cobra.Command{
	Use:   "settings:list",
	Short: "Show every store setting",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		all, err := c.settings.Load(cmd.Context())
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE\tDESCRIPTION")
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%s\t%s\n", k, all[k].Value, all[k].Description)
		}
		w.Flush()
		return nil
	},
}

// vyapar settings:set
var settingsSetCmd = &cobra.Command{
	Use:   "settings:set <key> <value>",
	Short: "Update one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}
		if err := c.settings.Update(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Setting %s updated.\n", args[0])
		return nil
	},
}

// vyapar settings:save
var settingsSaveCmd = &cobra.Command{
	Use:   "settings:save",
	Short: "Apply the store settings form in one bulk update",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		// Pre-fill from the stored settings so keys without a flag on
		// this invocation keep their current values.
		all, err := c.settings.Load(cmd.Context())
		if err != nil {
			return err
		}
		form := settings.FormFrom(all)

		flags := cmd.Flags()
		for _, f := range []struct {
			name     string
			dst, src *string
		}{
			{"site-name", &form.SiteName, &storeForm.SiteName},
			{"site-email", &form.SiteEmail, &storeForm.SiteEmail},
			{"site-phone", &form.SitePhone, &storeForm.SitePhone},
			{"shipping-charges", &form.ShippingCharges, &storeForm.ShippingCharges},
			{"tax-rate", &form.TaxRate, &storeForm.TaxRate},
			{"free-shipping-threshold", &form.FreeShippingThreshold, &storeForm.FreeShippingThreshold},
			{"min-order-amount", &form.MinOrderAmount, &storeForm.MinOrderAmount},
			{"low-stock-threshold", &form.LowStockThreshold, &storeForm.LowStockThreshold},
		} {
			if flags.Changed(f.name) {
				*f.dst = *f.src
			}
		}
		if flags.Changed("cod") {
			form.CODEnabled = storeForm.CODEnabled
		}

		res, err := c.settings.Save(cmd.Context(), &form)
		if err != nil {
			return err
		}
		if len(res.Errors) > 0 {
			fmt.Printf("Saved with %d error(s): %v\n", len(res.Errors), res.Errors)
			return nil
		}
		fmt.Println("Settings saved.")
		return nil
	},
}

func init() {
	f := settingsSaveCmd.Flags()
	f.StringVar(&storeForm.SiteName, "site-name", "", "store name")
	f.StringVar(&storeForm.SiteEmail, "site-email", "", "contact email")
	f.StringVar(&storeForm.SitePhone, "site-phone", "", "contact phone")
	f.StringVar(&storeForm.ShippingCharges, "shipping-charges", "", "flat shipping charge")
	f.StringVar(&storeForm.TaxRate, "tax-rate", "", "tax rate percent")
	f.StringVar(&storeForm.FreeShippingThreshold, "free-shipping-threshold", "", "free shipping above this amount")
	f.StringVar(&storeForm.MinOrderAmount, "min-order-amount", "", "minimum order amount")
	f.StringVar(&storeForm.LowStockThreshold, "low-stock-threshold", "", "default low stock threshold")
	f.BoolVar(&storeForm.CODEnabled, "cod", true, "cash on delivery enabled")
}
