package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// vyapar dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the store overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		ov := c.dashboard.Load(cmd.Context())

		if ov.Stats != nil {
			fmt.Printf("Total sales: %.2f across %d orders\n", ov.Stats.TotalSales.Float(), ov.Stats.TotalOrders)
			fmt.Printf("Today: %.2f (%d orders), %d pending\n",
				ov.Stats.TodaySales.Float(), ov.Stats.TodayOrders, ov.Stats.PendingOrders)
		}

		if ov.Breakdown != nil {
			b := ov.Breakdown
			fmt.Printf("\nOrders by status (%d total):\n", b.Total())
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintf(w, "pending\t%d\n", b.Pending)
			fmt.Fprintf(w, "confirmed\t%d\n", b.Confirmed)
			fmt.Fprintf(w, "processing\t%d\n", b.Processing)
			fmt.Fprintf(w, "shipped\t%d\n", b.Shipped)
			fmt.Fprintf(w, "delivered\t%d\n", b.Delivered)
			fmt.Fprintf(w, "cancelled\t%d\n", b.Cancelled)
			w.Flush()
		}

		if len(ov.PopularItems) > 0 {
			fmt.Println("\nBest sellers:")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "PRODUCT\tSKU\tORDERED\tREVENUE")
			for _, p := range ov.PopularItems {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n", p.ProductName, p.SKU, p.TotalOrdered, p.TotalRevenue.Float())
			}
			w.Flush()
		}

		if len(ov.RecentOrders) > 0 {
			fmt.Println("\nRecent orders:")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ORDER\tCUSTOMER\tSTATUS\tAMOUNT")
			for _, o := range ov.RecentOrders {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", o.OrderNumber, o.CustomerName, o.Status, o.FinalAmount.Float())
			}
			w.Flush()
		}

		if ov.LowStockAlert != nil && ov.LowStockAlert.Count > 0 {
			fmt.Printf("\nWarning: %d product(s) low on stock.\n", ov.LowStockAlert.Count)
		}

		for section := range ov.Errs {
			fmt.Fprintf(os.Stderr, "warning: %s section unavailable\n", section)
		}
		return nil
	},
}
