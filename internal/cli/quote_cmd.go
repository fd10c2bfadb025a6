package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/jardin/internal/cli/formatter"
	"github.com/alexanderramin/jardin/internal/composer"
	"github.com/alexanderramin/jardin/internal/document"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newQuoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compose and manage quotes",
	}

	cmd.AddCommand(
		newQuoteComposeCmd(app),
		newQuoteListCmd(app),
		newQuoteInspectCmd(app),
		newQuoteStatusCmd(app),
		newQuotePDFCmd(app),
		newQuoteEditCmd(app),
	)
	return cmd
}

func newQuoteComposeCmd(app *App) *cobra.Command {
	var d quoteDraft

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a quote from catalog plans",
		Long: `Compose a quote from catalog plans.

Without --plan flags on a terminal, an interactive form walks through the
client, plans and per-task choices. Otherwise flags describe the quote:

  jardin quote compose --client "Casa Verde" \
    --plan "Lawn care" --plan "Garden beds" \
    --exclude "Garden beds/Pruning" --hide Pruning \
    --note "Weeding=Avoid the roses" --price "Lawn care=45000"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(d.flags.plans) == 0 {
				if !app.interactive() {
					return fmt.Errorf("at least one --plan is required")
				}
				if err := runQuoteForm(ctx, app, &d); err != nil {
					return err
				}
			}

			clientID, err := resolveClientID(ctx, app, d.client)
			if err != nil {
				return err
			}
			catalog, err := app.Catalog.Load(ctx)
			if err != nil {
				return err
			}
			b := composer.NewBuilder(catalog)
			if err := d.flags.apply(b, catalog); err != nil {
				return err
			}

			draft := &domain.Quote{
				ClientID:         clientID,
				Considerations:   d.considerations,
				EconomicProposal: d.proposal,
			}
			plans := b.AddedPlans()
			id, err := app.Quotes.SaveQuoteWithPlansAndTasks(ctx, draft, plans)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created quote #%s with %d plans\n", service.DocumentNumber(id), len(plans))
			return nil
		},
	}

	cmd.Flags().StringVar(&d.client, "client", "", "Client name or ID")
	cmd.Flags().StringVar(&d.considerations, "considerations", "", "Considerations paragraph")
	cmd.Flags().StringVar(&d.proposal, "proposal", "", "Economic proposal paragraph")
	d.flags.register(cmd.Flags(), "plan")

	return cmd
}

func newQuoteEditCmd(app *App) *cobra.Command {
	var f composeFlags
	var remove []string
	var client, considerations, proposal string

	cmd := &cobra.Command{
		Use:   "edit QUOTE",
		Short: "Change a quote's fields, plans and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			detail, err := app.Quotes.GetDetail(ctx, id)
			if err != nil {
				return err
			}
			catalog, err := app.Catalog.Load(ctx)
			if err != nil {
				return err
			}

			b := composer.FromAddedPlans(catalog, detail.Plans)
			if err := removePlans(b, remove); err != nil {
				return err
			}
			if err := f.apply(b, catalog); err != nil {
				return err
			}

			var patch domain.QuotePatch
			flags := cmd.Flags()
			if flags.Changed("client") {
				clientID, err := resolveClientID(ctx, app, client)
				if err != nil {
					return err
				}
				patch.ClientID = &clientID
			}
			if flags.Changed("considerations") {
				patch.Considerations = &considerations
			}
			if flags.Changed("proposal") {
				patch.EconomicProposal = &proposal
			}

			if err := app.Quotes.UpdateQuoteWithPlansAndTasks(ctx, id, patch, b.AddedPlans()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated quote #%s\n", service.DocumentNumber(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "Move the quote to another client")
	cmd.Flags().StringVar(&considerations, "considerations", "", "Replace the considerations paragraph")
	cmd.Flags().StringVar(&proposal, "proposal", "", "Replace the economic proposal paragraph")
	cmd.Flags().StringArrayVar(&remove, "remove-plan", nil, "Remove an added plan and all its tasks")
	f.register(cmd.Flags(), "add-plan")

	return cmd
}

func newQuoteListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var st domain.QuoteStatus
			if status != "" {
				var err error
				if st, err = domain.ParseQuoteStatus(status); err != nil {
					return err
				}
			}
			quotes, err := app.Quotes.List(ctx, st)
			if err != nil {
				return err
			}
			names, err := clientNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatQuoteList(quotes, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, sent, accepted, discarded)")
	return cmd
}

func newQuoteInspectCmd(app *App) *cobra.Command {
	var asDocument bool

	cmd := &cobra.Command{
		Use:   "inspect QUOTE",
		Short: "Show a quote with its plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if asDocument {
				doc, err := app.Quotes.Document(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), document.RenderText(*doc))
				return nil
			}
			detail, err := app.Quotes.GetDetail(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatQuoteDetail(detail))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asDocument, "document", false, "Print the client-facing document text")
	return cmd
}

func newQuoteStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status QUOTE STATUS",
		Short: "Move a quote to pending, sent, accepted or discarded",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			next, err := domain.ParseQuoteStatus(args[1])
			if err != nil {
				return err
			}
			q, err := app.Quotes.TransitionStatus(ctx, id, next)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Quote #%s is %s\n", service.DocumentNumber(q.ID), q.Status)
			return nil
		},
	}
}

func newQuotePDFCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pdf QUOTE",
		Short: "Render a quote as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			data, err := app.Quotes.PDF(ctx, id)
			if err != nil {
				return err
			}

			if out != "" {
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(data))
				return nil
			}
			w := cmd.OutOrStdout()
			if isTerminal(w) {
				return fmt.Errorf("refusing to write PDF to a terminal; use --out FILE or redirect stdout")
			}
			_, err = w.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
