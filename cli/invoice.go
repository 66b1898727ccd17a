package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"invoicegen-cli/api"
	"invoicegen-cli/models"
	"invoicegen-cli/pdf"
	"invoicegen-cli/utils"
	"invoicegen-cli/validation"
)

// parseItem splits an --item argument of the form "name:price:qty".
// Product names may contain colons, so the split is anchored from the
// right.
func parseItem(s string) (models.LineItem, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return models.LineItem{}, fmt.Errorf("invalid item %q, expected name:price:qty", s)
	}
	return models.LineItem{
		ProductName: strings.Join(parts[:len(parts)-2], ":"),
		Price:       parts[len(parts)-2],
		Quantity:    parts[len(parts)-1],
	}, nil
}

// buildDraft collects the command flags into a draft through the
// line-item model, the same path an interactive form would take.
func buildDraft(c *cli.Context, base *models.Draft) (*models.Draft, error) {
	d := base
	if d == nil {
		d = models.NewDraft()
	}
	if v := c.String("customer"); v != "" {
		d.CustomerName = v
	}
	if v := c.String("email"); v != "" {
		d.CustomerEmail = v
	}
	if v := c.String("company"); v != "" {
		d.CompanyOrIndividual = v
	}

	items := c.StringSlice("item")
	if len(items) > 0 {
		// Replacing the lines: reset to a single blank line first, then
		// grow through the model so the one-line floor always holds.
		for len(d.Lines) > 1 {
			d.RemoveLine(len(d.Lines) - 1)
		}
		for i, raw := range items {
			li, err := parseItem(raw)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				d.AddLine()
			}
			idx := len(d.Lines) - 1
			d.SetField(idx, models.FieldProductName, li.ProductName)
			d.SetField(idx, models.FieldPrice, li.Price)
			d.SetField(idx, models.FieldQuantity, li.Quantity)
		}
	}
	return d, nil
}

func (e *env) requireSession() error {
	if e.store.Token() == "" {
		return cli.Exit(errNotLoggedIn.Error(), 1)
	}
	return nil
}

func (e *env) createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "create a new invoice",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "customer", Usage: "customer name", Required: true},
			&cli.StringFlag{Name: "email", Usage: "customer email", Required: true},
			&cli.StringFlag{Name: "company", Usage: "Individual or Company"},
			&cli.StringSliceFlag{Name: "item", Usage: "product line as name:price:qty (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			if err := e.requireSession(); err != nil {
				return err
			}
			draft, err := buildDraft(c, nil)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if err := validation.ValidateDraft(draft); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			res := e.client.CreateInvoice(c.Context, draft.CustomerName, draft.CustomerEmail,
				draft.ValidProducts(), draft.CompanyOrIndividual)
			if !res.Success {
				return cli.Exit(res.Message, 1)
			}
			fmt.Printf("%s Total: %s\n", res.Message, utils.FormatMoney(draft.OverallTotal()))
			return nil
		},
	}
}

func (e *env) listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list invoices, optionally filtered by customer email",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "customer", Usage: "filter by customer email"},
		},
		Action: func(c *cli.Context) error {
			if err := e.requireSession(); err != nil {
				return err
			}
			var res api.InvoicesResult
			if email := c.String("customer"); email != "" {
				res = e.client.GetInvoicesByCustomer(c.Context, email)
			} else {
				res = e.client.GetAllInvoices(c.Context)
			}
			if !res.Success {
				return cli.Exit(res.Message, 1)
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCUSTOMER\tEMAIL\tTOTAL\tCREATED")
			for i := range res.Invoices {
				inv := &res.Invoices[i]
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					inv.ID, inv.CustomerName, inv.CustomerEmail,
					utils.FormatMoney(inv.LineItemSum()), inv.CreatedAt.Format())
			}
			return w.Flush()
		},
	}
}

// fetchInvoice looks an invoice up by id via the list endpoint; the
// backend has no lookup-by-id read.
func (e *env) fetchInvoice(c *cli.Context, id int64) (*models.Invoice, error) {
	res := e.client.GetAllInvoices(c.Context)
	if !res.Success {
		return nil, fmt.Errorf("%s", res.Message)
	}
	for i := range res.Invoices {
		if res.Invoices[i].ID == id {
			return &res.Invoices[i], nil
		}
	}
	return nil, fmt.Errorf("invoice %d not found", id)
}

func (e *env) updateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "update an existing invoice",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true},
			&cli.StringFlag{Name: "customer", Usage: "new customer name"},
			&cli.StringFlag{Name: "email", Usage: "new customer email"},
			&cli.StringSliceFlag{Name: "item", Usage: "replacement product line as name:price:qty (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			if err := e.requireSession(); err != nil {
				return err
			}
			inv, err := e.fetchInvoice(c, c.Int64("id"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			draft, err := buildDraft(c, models.DraftFromInvoice(inv))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if err := validation.ValidateDraft(draft); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			res := e.client.UpdateInvoice(c.Context, inv.ID, draft.CustomerName,
				draft.CustomerEmail, draft.ValidProducts())
			if !res.Success {
				return cli.Exit(res.Message, 1)
			}
			fmt.Println(res.Message)
			return nil
		},
	}
}

func (e *env) deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "delete an invoice by id",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true},
		},
		Action: func(c *cli.Context) error {
			if err := e.requireSession(); err != nil {
				return err
			}
			res := e.client.DeleteInvoice(c.Context, c.Int64("id"))
			if !res.Success {
				return cli.Exit(res.Message, 1)
			}
			fmt.Println(res.Message)
			return nil
		},
	}
}

func (e *env) exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "render an invoice to a PDF file",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true},
			&cli.StringFlag{Name: "out", Value: "invoice.pdf", Usage: "output file"},
		},
		Action: func(c *cli.Context) error {
			if err := e.requireSession(); err != nil {
				return err
			}
			inv, err := e.fetchInvoice(c, c.Int64("id"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			f, err := os.Create(c.String("out"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer f.Close()
			if err := pdf.Render(inv, f); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Printf("Wrote %s\n", c.String("out"))
			return nil
		},
	}
}
