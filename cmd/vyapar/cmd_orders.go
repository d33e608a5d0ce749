package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vyapar/config"
	"github.com/shashiranjanraj/vyapar/internal/orders"
)

var (
	orderSearch        string
	orderStatusFilter  string
	paymentFilter      string
	orderPage          int
	statusNotes        string
	trackingNumberFlag string
	courierFlag        string
	cancelReason       string
	exportOut          string
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func orderFilter() orders.Filter {
	return orders.Filter{
		Search:        orderSearch,
		Status:        orderStatusFilter,
		PaymentStatus: paymentFilter,
	}
}

// vyapar orders:list
var ordersListCmd = &cobra.Command{
	Use:   "orders:list",
	Short: "Browse orders with search, status and payment filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		page, err := c.orders.Browse(cmd.Context(), orderFilter(), orderPage, config.ItemsPerPage())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tORDER\tCUSTOMER\tSTATUS\tPAYMENT\tAMOUNT")
		for _, o := range page.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s/%s\t%.2f\n",
				o.ID, o.OrderNumber, o.CustomerName,
				o.Status, o.PaymentStatus, o.PaymentMethod, o.FinalAmount.Float())
		}
		w.Flush()
		fmt.Printf("\nPage %d of %d (%d orders)\n", page.Number, page.TotalPages, page.Total)
		return nil
	},
}

// vyapar orders:show
var ordersShowCmd = &cobra.Command{
	Use:   "orders:show <id>",
	Short: "Show one order with items and status history",
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

		o, err := c.orders.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Order %s  [%s, payment %s via %s]\n", o.OrderNumber, o.Status, o.PaymentStatus, o.PaymentMethod)
		fmt.Printf("Customer: %s <%s> %s\n", o.CustomerName, o.CustomerEmail, o.CustomerPhone)
		addr := strings.Join(nonEmpty(
			o.ShippingAddressLine1, o.ShippingAddressLine2,
			o.ShippingCity, o.ShippingState, o.ShippingPincode, o.ShippingCountry), ", ")
		if addr != "" {
			fmt.Printf("Ship to:  %s\n", addr)
		}
		if o.TrackingNumber != "" {
			fmt.Printf("Tracking: %s via %s\n", o.TrackingNumber, o.CourierName)
		}
		fmt.Printf("Amounts:  subtotal %.2f + shipping %.2f + tax %.2f = %.2f\n",
			o.SubtotalAmount.Float(), o.ShippingCharges.Float(), o.TaxAmount.Float(), o.FinalAmount.Float())

		if len(o.Items) > 0 {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "\nITEM\tSKU\tVARIANT\tQTY\tSUBTOTAL")
			for _, it := range o.Items {
				variant := strings.Join(nonEmpty(it.Size, it.Color), "/")
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\n",
					it.ProductName, it.SKU, variant, it.Quantity, it.Subtotal.Float())
			}
			w.Flush()
		}

		for _, h := range o.StatusHistory {
			line := fmt.Sprintf("  %s  -> %s", h.CreatedAt, h.NewStatus)
			if h.Notes != "" {
				line += " (" + h.Notes + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

// vyapar orders:stats
var ordersStatsCmd = &cobra.Command{
	Use:   "orders:stats",
	Short: "Show the order status summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		stats, err := c.orders.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Total orders: %d\n", stats.TotalOrders)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		for _, status := range orders.Statuses {
			fmt.Fprintf(w, "%s\t%d\n", status, stats.ByStatus[status])
		}
		w.Flush()
		return nil
	},
}

// vyapar orders:status
var ordersStatusCmd = &cobra.Command{
	Use:   "orders:status <id> <status>",
	Short: "Update an order's status (" + strings.Join(orders.Statuses, ", ") + ")",
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
		if !orders.ValidStatus(args[1]) {
			return fmt.Errorf("unknown status %q (want one of %s)", args[1], strings.Join(orders.Statuses, ", "))
		}

		o, err := c.orders.UpdateStatus(cmd.Context(), id, args[1], statusNotes)
		if err != nil {
			return err
		}
		fmt.Printf("Order %s is now %s.\n", o.OrderNumber, o.Status)
		return nil
	},
}

// vyapar orders:track
var ordersTrackCmd = &cobra.Command{
	Use:   "orders:track <id>",
	Short: "Attach a tracking number and courier to an order",
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

		o, err := c.orders.AddTracking(cmd.Context(), id, trackingNumberFlag, courierFlag)
		if err != nil {
			return err
		}
		fmt.Printf("Order %s: tracking %s via %s.\n", o.OrderNumber, o.TrackingNumber, o.CourierName)
		return nil
	},
}

// vyapar orders:cancel
var ordersCancelCmd = &cobra.Command{
	Use:   "orders:cancel <id>",
	Short: "Cancel an order (refused for delivered orders)",
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

		order, err := c.orders.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		o, err := c.orders.Cancel(cmd.Context(), order, cancelReason)
		switch {
		case errors.Is(err, orders.ErrAlreadyCancelled):
			fmt.Println("Order is already cancelled.")
			return nil
		case errors.Is(err, orders.ErrDeclined):
			fmt.Println("Aborted.")
			return nil
		case err != nil:
			return err
		}
		fmt.Printf("Order %s cancelled.\n", o.OrderNumber)
		return nil
	},
}

// vyapar orders:paid
var ordersPaidCmd = &cobra.Command{
	Use:   "orders:paid <id>",
	Short: "Mark a COD order's payment as received",
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

		order, err := c.orders.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		o, err := c.orders.MarkPaymentReceived(cmd.Context(), order)
		switch {
		case errors.Is(err, orders.ErrPaymentAlreadyCompleted):
			fmt.Println("Payment is already completed.")
			return nil
		case errors.Is(err, orders.ErrDeclined):
			fmt.Println("Aborted.")
			return nil
		case err != nil:
			return err
		}
		fmt.Printf("Order %s: payment %s.\n", o.OrderNumber, o.PaymentStatus)
		return nil
	},
}

// vyapar orders:export
var ordersExportCmd = &cobra.Command{
	Use:   "orders:export",
	Short: "Download the filtered orders as a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		export, err := c.orders.ExportCSV(cmd.Context(), orderFilter())
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			path = export.Filename
		}
		if err := os.WriteFile(path, export.Data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %d bytes to %s.\n", len(export.Data), path)
		return nil
	},
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	for _, cmd := range []*cobra.Command{ordersListCmd, ordersExportCmd} {
		cmd.Flags().StringVar(&orderSearch, "search", "", "match order number, customer name or email")
		cmd.Flags().StringVar(&orderStatusFilter, "status", "", "filter by order status")
		cmd.Flags().StringVar(&paymentFilter, "payment-status", "", "filter by payment status")
	}
	ordersListCmd.Flags().IntVar(&orderPage, "page", 1, "page number")

	ordersStatusCmd.Flags().StringVar(&statusNotes, "notes", "", "note for the status history")
	ordersTrackCmd.Flags().StringVar(&trackingNumberFlag, "number", "", "tracking number")
	ordersTrackCmd.Flags().StringVar(&courierFlag, "courier", "", "courier name")
	ordersCancelCmd.Flags().StringVar(&cancelReason, "reason", "", "cancellation reason")
	ordersExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: server filename)")
}
