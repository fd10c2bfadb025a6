package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/jardin/internal/apiclient"
	"github.com/alexanderramin/jardin/internal/auth"
	"github.com/alexanderramin/jardin/internal/cli/formatter"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/httpapi"
	"github.com/spf13/cobra"
)

func newRemoteCmd(app *App) *cobra.Command {
	var url, token string

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Talk to a running jardin server",
	}
	cmd.PersistentFlags().StringVar(&url, "url", "", "Server URL (default from JARDIN_API_URL)")
	cmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token (default from JARDIN_API_TOKEN)")

	connect := func(ctx context.Context) (*apiclient.Client, context.Context) {
		base := domain.CoalesceStr(url, app.Config.Remote.URL)
		tok := domain.CoalesceStr(token, app.Config.Remote.Token)
		return apiclient.New(base, 2), auth.WithSession(ctx, auth.Session{Token: tok})
	}

	// wait shows a spinner on stderr while a request is in flight.
	wait := func(cmd *cobra.Command, message string) func() {
		if !app.interactive() {
			return func() {}
		}
		return formatter.StartSpinner(cmd.ErrOrStderr(), message)
	}

	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "Show the server's catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ctx := connect(cmd.Context())
			stop := wait(cmd, "Loading catalog")
			plans, err := client.Catalog(ctx)
			stop()
			if err != nil {
				return remoteError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCatalog(fromWireCatalog(plans)))
			return nil
		},
	}

	schedule := &cobra.Command{
		Use:   "schedule CONTRACT_ID",
		Short: "Generate a contract's visits on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ctx := connect(cmd.Context())
			stop := wait(cmd, "Scheduling visits")
			result, err := client.ScheduleVisits(ctx, args[0])
			stop()
			if err != nil {
				return remoteError(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Message)
			if len(result.Created) > 0 {
				fmt.Fprintln(out, formatter.FormatVisitList(fromWireVisits(result.Created)))
			}
			return nil
		},
	}

	cmd.AddCommand(catalog, schedule)
	return cmd
}

func remoteError(err error) error {
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		return fmt.Errorf("%w: issue a new token with `jardin token issue` and set JARDIN_API_TOKEN", err)
	case errors.Is(err, apiclient.ErrUnavailable):
		return fmt.Errorf("%w: is `jardin serve` running?", err)
	}
	return err
}

func fromWireCatalog(plans []httpapi.CatalogPlan) []domain.PlanWithTasks {
	out := make([]domain.PlanWithTasks, len(plans))
	for i, p := range plans {
		out[i].Plan = domain.Plan{ID: p.ID, Name: p.Name, Description: p.Description}
		for _, t := range p.Tasks {
			out[i].Tasks = append(out[i].Tasks, domain.Task{
				ID: t.ID, PlanID: t.PlanID, Name: t.Name, Kind: domain.TaskKind(t.Kind),
			})
		}
	}
	return out
}

func fromWireVisits(visits []httpapi.Visit) []*domain.Visit {
	out := make([]*domain.Visit, len(visits))
	for i, v := range visits {
		date, _ := time.Parse(dateLayout, v.Date)
		out[i] = &domain.Visit{
			ID:         v.ID,
			ClientID:   v.ClientID,
			ContractID: v.ContractID,
			TeamID:     v.TeamID,
			Date:       date,
			Type:       domain.VisitType(v.Type),
			Status:     domain.VisitStatus(v.Status),
		}
	}
	return out
}
