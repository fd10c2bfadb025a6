package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/jardin/internal/cli/formatter"
	"github.com/alexanderramin/jardin/internal/document"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/service"
	"github.com/spf13/cobra"
)

func newContractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Turn quotes into contracts and inspect them",
	}

	cmd.AddCommand(
		newContractFromQuoteCmd(app),
		newContractListCmd(app),
		newContractInspectCmd(app),
	)
	return cmd
}

func newContractFromQuoteCmd(app *App) *cobra.Command {
	var team, frequency, day string
	var start, end time.Time
	var hide, show, notes []string

	cmd := &cobra.Command{
		Use:   "from-quote QUOTE",
		Short: "Create a contract from a quote's plans and tasks",
		Long: `Create a contract from a quote's plans and tasks.

The client becomes active and the quote accepted in the same transaction.
--hide, --show and --note adjust tasks on the way, keyed by task name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			quoteID, err := resolveQuoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			teamID, err := resolveTeamID(ctx, app, team)
			if err != nil {
				return err
			}
			freq, err := domain.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			weekday, err := domain.ParseWeekday(day)
			if err != nil {
				return err
			}

			detail, err := app.Quotes.GetDetail(ctx, quoteID)
			if err != nil {
				return err
			}
			overrides, err := taskOverrides(detail.Plans, hide, show, notes)
			if err != nil {
				return err
			}

			terms := service.ContractTerms{
				TeamID:    teamID,
				StartDate: start,
				EndDate:   end,
				Frequency: freq,
				VisitDay:  weekday,
			}
			id, err := app.Contracts.CreateContractFromQuote(ctx, quoteID, terms, overrides)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created contract #%s from quote #%s\n",
				service.DocumentNumber(id), service.DocumentNumber(quoteID))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&team, "team", "", "Crew name or ID")
	dateVar(f, &start, "start", "Start date (YYYY-MM-DD)")
	dateVar(f, &end, "end", "End date (YYYY-MM-DD)")
	f.StringVar(&frequency, "frequency", "weekly", "weekly, biweekly, monthly or one_off")
	f.StringVar(&day, "day", "", "Visit weekday (e.g. tuesday)")
	f.StringArrayVar(&hide, "hide", nil, "Hide a task from crew sheets")
	f.StringArrayVar(&show, "show", nil, "Show a task on crew sheets")
	f.StringArrayVar(&notes, "note", nil, "Task observation as TASK=text")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("day")

	return cmd
}

// taskOverrides turns task references into overrides keyed by task id.
func taskOverrides(plans []domain.AddedPlan, hide, show, notes []string) (map[string]service.TaskOverride, error) {
	out := make(map[string]service.TaskOverride)
	each := func(flag string, r taskRef, fn func(*service.TaskOverride)) error {
		matched := false
		for _, p := range plans {
			for _, t := range p.Tasks {
				if r.matches(p.PlanID, p.DisplayName(), t.TaskID, t.Name) || r.matches(p.PlanID, p.Name, t.TaskID, t.Name) {
					o := out[t.TaskID]
					fn(&o)
					out[t.TaskID] = o
					matched = true
				}
			}
		}
		if !matched {
			return fmt.Errorf("%w: %s %q matches no quote task", domain.ErrValidation, flag, r.raw)
		}
		return nil
	}

	visible, hidden := true, false
	for _, s := range hide {
		if err := each("--hide", parseTaskRef(s), func(o *service.TaskOverride) { o.VisibleToCrew = &hidden }); err != nil {
			return nil, err
		}
	}
	for _, s := range show {
		if err := each("--show", parseTaskRef(s), func(o *service.TaskOverride) { o.VisibleToCrew = &visible }); err != nil {
			return nil, err
		}
	}
	for _, n := range notes {
		key, text, err := splitPair("note", n)
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(text)
		if err := each("--note", parseTaskRef(key), func(o *service.TaskOverride) { o.Observation = &text }); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func newContractListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contracts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var st domain.ContractStatus
			if status != "" {
				var err error
				if st, err = domain.ParseContractStatus(status); err != nil {
					return err
				}
			}
			contracts, err := app.Contracts.List(ctx, st)
			if err != nil {
				return err
			}
			clients, err := clientNames(ctx, app)
			if err != nil {
				return err
			}
			teams, err := teamNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatContractList(contracts, clients, teams))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (active, suspended, finished, cancelled)")
	return cmd
}

func newContractInspectCmd(app *App) *cobra.Command {
	var asDocument bool

	cmd := &cobra.Command{
		Use:   "inspect CONTRACT",
		Short: "Show a contract with its plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if asDocument {
				doc, err := app.Contracts.Document(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), document.RenderText(*doc))
				return nil
			}
			detail, err := app.Contracts.GetDetail(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatContractDetail(detail))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asDocument, "document", false, "Print the client-facing document text")
	return cmd
}
