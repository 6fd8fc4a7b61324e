package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/order"
)

// orderFlags are shared by the order subcommands.
type orderFlags struct {
	db string
}

func (of *orderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&of.db, "db", "", "SQLite order book (default: ~/.local/share/perfwall/orders.db)")
}

func (of *orderFlags) path() (string, error) {
	if of.db != "" {
		return of.db, nil
	}
	return defaultOrderDB()
}

// orderCommand creates the order command.
func (c *CLI) orderCommand() *cobra.Command {
	var (
		of       orderFlags
		customer order.Customer
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "order [image]",
		Short: "Submit a wall order to the local order book",
		Long: `Submit a wall order to the local order book.

The wall is laid out, priced and stored with the contact details. Name,
email and phone are required. Orders go to a local SQLite file unless the
config's [server] section names MongoDB; with a Redis URL every order is
also published on the notification channel.`,
		Args: cobra.MaximumNArgs(1),
	}
	wf := addWallFlags(cmd)
	of.bind(cmd)
	cmd.Flags().StringVar(&customer.Name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&customer.Email, "email", "", "customer email (required)")
	cmd.Flags().StringVar(&customer.Phone, "phone", "", "customer phone (required)")
	cmd.Flags().StringVar(&customer.Notes, "notes", "", "additional notes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored order as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := customer.Normalize().Validate(); err != nil {
			return err
		}
		file, err := wf.load(cmd)
		if err != nil {
			return err
		}
		dbPath, err := of.path()
		if err != nil {
			return err
		}

		b, err := openBackends(ctx, file.Server, c.Logger, wf.noCache, dbPath)
		if err != nil {
			return err
		}
		defer b.Close()

		runner := b.runner(c.Logger)
		res, err := computeWithSpinner(ctx, "Computing layout...", func(ctx context.Context) (*computed, error) {
			opts := wf.options(file, imageArg(args))
			opts.Stdin = cmd.InOrStdin()
			return compute(ctx, runner, opts)
		})
		if err != nil {
			return err
		}

		svc := order.NewService(b.Orders, order.WithNotifier(b.Notifier), order.WithLogger(c.Logger))
		o, err := svc.Submit(ctx, order.Request{
			Customer:  customer,
			Params:    res.Layout.Params,
			HoleCount: res.Layout.TotalHoleCount,
		})
		if err != nil {
			return err
		}
		svc.Wait()

		if asJSON {
			return writeJSON(cmd, o)
		}
		printSuccess("Order %s submitted", StyleHighlight.Render(o.ID))
		printNewline()
		printSummary(o.Summary)
		return nil
	}

	cmd.AddCommand(c.orderListCommand())
	cmd.AddCommand(c.orderShowCommand())
	return cmd
}

// orderListCommand creates the "order list" subcommand.
func (c *CLI) orderListCommand() *cobra.Command {
	var (
		of     orderFlags
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := of.open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			orders, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, orders)
			}
			if len(orders) == 0 {
				printInfo("No orders yet")
				return nil
			}
			t := newTable("ID", "Created", "Customer", "Material", "Total")
			for _, o := range orders {
				t.Row(o.ID, o.CreatedAt.Local().Format("2006-01-02 15:04"), o.Customer.Name, o.Breakdown.Material, fmt.Sprintf("€%.2f", o.Total()))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	of.bind(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of orders, 0 for all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

// orderShowCommand creates the "order show" subcommand.
func (c *CLI) orderShowCommand() *cobra.Command {
	var of orderFlags
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one stored order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := of.open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			o, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printKeyValue("Order", o.ID)
			printKeyValue("Created", o.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			printKeyValue("Customer", fmt.Sprintf("%s <%s> %s", o.Customer.Name, o.Customer.Email, o.Customer.Phone))
			if o.Customer.Notes != "" {
				printKeyValue("Notes", o.Customer.Notes)
			}
			printNewline()
			printSummary(o.Summary)
			return nil
		},
	}
	of.bind(cmd)
	return cmd
}

// open opens the SQLite order book.
func (of *orderFlags) open(ctx context.Context) (order.Store, error) {
	path, err := of.path()
	if err != nil {
		return nil, err
	}
	return order.OpenSQLite(ctx, path)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
