package cli

import (
	"fmt"
	"os/user"
	"time"

	"github.com/alexanderramin/jardin/internal/cli/formatter"
	"github.com/alexanderramin/jardin/internal/dispatch"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/alexanderramin/jardin/internal/scheduler"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newVisitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visit",
		Short: "Schedule and dispatch crew visits",
	}

	cmd.AddCommand(
		newVisitScheduleCmd(app),
		newVisitListCmd(app),
		newVisitRouteCmd(app),
		newVisitSheetCmd(app),
		newVisitStartCmd(app),
		newVisitRescheduleCmd(app),
		newVisitCancelCmd(app),
		newVisitCloseCmd(app),
	)
	return cmd
}

func newVisitScheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule CONTRACT",
		Short: "Create the contract's missing visits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			result, err := app.Visits.GenerateAgenda(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Message)
			if len(result.Created) > 0 {
				fmt.Fprintln(out, formatter.FormatVisitList(result.Created))
			}
			return nil
		},
	}
}

func newVisitListCmd(app *App) *cobra.Command {
	var contract, team, status string
	var from, to time.Time

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var f repository.VisitFilter
			var err error
			if contract != "" {
				if f.ContractID, err = resolveContractID(ctx, app, contract); err != nil {
					return err
				}
			}
			if team != "" {
				if f.TeamID, err = resolveTeamID(ctx, app, team); err != nil {
					return err
				}
			}
			if status != "" {
				if f.Status, err = domain.ParseVisitStatus(status); err != nil {
					return err
				}
			}
			if !from.IsZero() {
				f.From = &from
			}
			if !to.IsZero() {
				f.To = &to
			}
			visits, err := app.Visits.List(ctx, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatVisitList(visits))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&contract, "contract", "", "Contract number or ID")
	fs.StringVar(&team, "team", "", "Team name or ID")
	fs.StringVar(&status, "status", "", "Visit status")
	dateVar(fs, &from, "from", "First date (YYYY-MM-DD)")
	dateVar(fs, &to, "to", "Last date (YYYY-MM-DD)")
	return cmd
}

func newVisitRouteCmd(app *App) *cobra.Command {
	var team string
	var week time.Time

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Show the week's route sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			teamID := ""
			if team != "" {
				var err error
				if teamID, err = resolveTeamID(ctx, app, team); err != nil {
					return err
				}
			}
			if week.IsZero() {
				week = time.Now().UTC()
			}
			from, to := scheduler.WeekRange(week)
			stops, err := app.Visits.Route(ctx, from, to, teamID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRoute(stops))
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Only this team")
	dateVar(cmd.Flags(), &week, "week", "Any date in the week (default today)")
	return cmd
}

func newVisitSheetCmd(app *App) *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "sheet VISIT",
		Short: "Open the crew sheet of a visit",
		Long: `Open the crew sheet of a visit.

On a terminal the sheet is an interactive checklist: mark tasks done, add an
observation and close the visit. Otherwise the sheet is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveVisitID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sheet, err := app.Visits.Sheet(ctx, id)
			if err != nil {
				return err
			}
			if !app.interactive() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSheet(sheet))
				return nil
			}

			final, err := tea.NewProgram(newSheetModel(sheet), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("running sheet: %w", err)
			}
			if m, ok := final.(sheetModel); !ok || !m.submitted {
				return nil
			}
			return closeSheet(cmd, app, sheet, by)
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Who closes the visit (default current user)")
	return cmd
}

func newVisitCloseCmd(app *App) *cobra.Command {
	var done []string
	var all bool
	var observation, by string

	cmd := &cobra.Command{
		Use:   "close VISIT",
		Short: "Record completed tasks and close a visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveVisitID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sheet, err := app.Visits.Sheet(ctx, id)
			if err != nil {
				return err
			}
			if all {
				sheet.MarkAll()
			}
			for _, input := range done {
				r := parseTaskRef(input)
				matched := false
				for _, t := range sheet.Tasks {
					if r.matches("", t.PlanName, t.TaskSelectionID, t.Name) {
						_ = sheet.Mark(t.TaskSelectionID, true)
						matched = true
					}
				}
				if !matched {
					return fmt.Errorf("%w: --done %q matches no task on the sheet", domain.ErrValidation, input)
				}
			}
			sheet.SetObservation(observation)
			return closeSheet(cmd, app, sheet, by)
		},
	}

	cmd.Flags().StringArrayVar(&done, "done", nil, "Task done on the visit, by name (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "Mark every task done")
	cmd.Flags().StringVar(&observation, "observation", "", "Crew observation")
	cmd.Flags().StringVar(&by, "by", "", "Who closes the visit (default current user)")
	return cmd
}

func closeSheet(cmd *cobra.Command, app *App, sheet *dispatch.Sheet, by string) error {
	if by == "" {
		by = currentUser()
	}
	req, err := sheet.CloseRequest(by)
	if err != nil {
		return err
	}
	v, err := app.Visits.Close(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Visit %s %s with %d/%d tasks done\n",
		formatter.ShortID(v.ID), v.Status, len(req.DoneTaskIDs), len(sheet.Tasks))
	return nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

func newVisitStartCmd(app *App) *cobra.Command {
	return newVisitTransitionCmd(app, "start", "Mark a visit in progress",
		func(cmd *cobra.Command, id string) (*domain.Visit, error) {
			return app.Visits.Start(cmd.Context(), id)
		})
}

func newVisitCancelCmd(app *App) *cobra.Command {
	return newVisitTransitionCmd(app, "cancel", "Cancel a visit",
		func(cmd *cobra.Command, id string) (*domain.Visit, error) {
			return app.Visits.Cancel(cmd.Context(), id)
		})
}

func newVisitRescheduleCmd(app *App) *cobra.Command {
	var date time.Time
	cmd := newVisitTransitionCmd(app, "reschedule", "Move a visit to another date",
		func(cmd *cobra.Command, id string) (*domain.Visit, error) {
			return app.Visits.Reschedule(cmd.Context(), id, date)
		})
	dateVar(cmd.Flags(), &date, "date", "New date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newVisitTransitionCmd(app *App, use, short string, fn func(*cobra.Command, string) (*domain.Visit, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " VISIT",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveVisitID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			v, err := fn(cmd, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Visit %s is %s on %s\n",
				formatter.ShortID(v.ID), formatter.Status(string(v.Status)), formatter.Date(v.Date))
			return nil
		},
	}
}
