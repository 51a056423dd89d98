package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-clientes-sync/dashboard"
	"github.com/goliatone/go-clientes-sync/mutation"
	"github.com/goliatone/go-clientes-sync/pkg/apperrors"
	"github.com/goliatone/go-clientes-sync/records"
)

func (a *app) newListCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients, optionally filtered by name or RNC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := a.container.NewListView()
			if err := view.Load(cmd.Context()); err != nil {
				return describe(err)
			}
			view.SetSearch(search)
			rows := view.Rows()

			return a.printResult(rows, func(w io.Writer) {
				writeClients(w, rows)
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Keep clients whose name or RNC contains this text")
	return cmd
}

func (a *app) newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := a.container.Clients().GetByID(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}
			return a.printResult(client, func(w io.Writer) {
				writeClient(w, client)
			})
		},
	}
}

func (a *app) newCreateCommand() *cobra.Command {
	input := &draftInput{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client (interactive when no field flags are given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := a.container.Controller().NewForm(mutation.Create())
			defer f.Close()

			if !input.anySet(cmd) {
				if err := a.editDraft(input); err != nil {
					return err
				}
			}
			return a.submit(cmd, f, input.draft)
		},
	}
	input.bind(cmd)
	return cmd
}

func (a *app) newEditCommand() *cobra.Command {
	input := &draftInput{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a client; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f := a.container.Controller().NewForm(mutation.Edit(id))
			defer f.Close()

			current, err := f.Load(cmd.Context())
			if err != nil {
				return describe(err)
			}

			if input.anySet(cmd) {
				input.mergeInto(cmd, &current)
				input.draft = current
			} else {
				input.draft = current
				if err := a.editDraft(input); err != nil {
					return err
				}
			}
			return a.submit(cmd, f, input.draft)
		},
	}
	input.bind(cmd)
	return cmd
}

func (a *app) newDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			target, err := a.container.Clients().GetByID(ctx, id)
			if err != nil {
				return describe(err)
			}

			view := a.container.NewListView()
			confirmation, err := view.RequestDelete(target)
			if err != nil {
				return err
			}

			ok := yes
			if !ok {
				ok, err = a.confirm(fmt.Sprintf("¿Eliminar el cliente %q?", target.Nombre))
				if err != nil {
					view.CancelDelete()
					return err
				}
			}
			if !ok {
				view.CancelDelete()
				fmt.Fprintln(cmd.ErrOrStderr(), "Eliminación cancelada")
				return nil
			}

			if err := confirmation.Confirm(ctx); err != nil {
				a.reportNotification(cmd)
				return describe(err)
			}
			a.reportNotification(cmd)
			return a.printResult(map[string]any{"deleted": target.ID}, func(w io.Writer) {})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

type dashboardOutput struct {
	Stats   dashboard.Stats  `json:"stats"`
	Recent  []records.Client `json:"recent"`
	Clients int              `json:"clients"`
}

func (a *app) newDashboardCommand() *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show dashboard counters and the most recent clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out dashboardOutput
			var list []records.Client

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				stats, err := a.container.Stats().Stats(ctx)
				out.Stats = stats
				return err
			})
			g.Go(func() error {
				clients, err := a.container.Clients().List(ctx)
				list = clients
				return err
			})
			if err := g.Wait(); err != nil {
				return describe(err)
			}

			out.Clients = len(list)
			out.Recent = mostRecent(list, recent)

			return a.printResult(out, func(w io.Writer) {
				fmt.Fprintf(w, "Total clientes:      %d\n", out.Stats.TotalClientes)
				fmt.Fprintf(w, "Total cotizaciones:  %d\n", out.Stats.TotalCotizaciones)
				fmt.Fprintf(w, "Cotizaciones (mes):  %d\n", out.Stats.CotizacionesMes)
				fmt.Fprintf(w, "Monto total (mes):   DOP %.2f\n\n", out.Stats.MontoTotalMes)
				writeClients(w, out.Recent)
			})
		},
	}
	cmd.Flags().IntVar(&recent, "recent", 5, "Number of recent clients to show")
	return cmd
}

func (a *app) submit(cmd *cobra.Command, f *mutation.Form, draft records.Draft) error {
	client, err := f.Submit(cmd.Context(), draft)
	a.reportNotification(cmd)
	if err != nil {
		if fields := apperrors.FieldsOf(err); len(fields) > 0 {
			return fmt.Errorf("invalid client: %s", fields)
		}
		return describe(err)
	}
	return a.printResult(client, func(w io.Writer) {
		writeClient(w, client)
	})
}

// reportNotification prints the visible notification on stderr.
func (a *app) reportNotification(cmd *cobra.Command) {
	if n, ok := a.container.Notifier().Current(); ok {
		fmt.Fprintln(cmd.ErrOrStderr(), n.Text)
	}
}

// describe turns a NotFound into an operator-facing message.
func describe(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("cliente no encontrado: %w", err)
	}
	return err
}

// mostRecent returns the n newest clients; ids are assigned in creation order.
func mostRecent(list []records.Client, n int) []records.Client {
	out := append([]records.Client(nil), list...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func writeClients(w io.Writer, clients []records.Client) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tRNC\tCORREO\tTELÉFONO")
	for _, c := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Nombre, dash(c.RNC), dash(c.Correo), dash(c.Telefono))
	}
	_ = tw.Flush()
}

func writeClient(w io.Writer, c records.Client) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", c.ID)
	fmt.Fprintf(tw, "Nombre:\t%s\n", c.Nombre)
	fmt.Fprintf(tw, "RNC:\t%s\n", dash(c.RNC))
	fmt.Fprintf(tw, "Correo:\t%s\n", dash(c.Correo))
	fmt.Fprintf(tw, "Teléfono:\t%s\n", dash(c.Telefono))
	fmt.Fprintf(tw, "Dirección:\t%s\n", dash(c.Direccion))
	_ = tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
