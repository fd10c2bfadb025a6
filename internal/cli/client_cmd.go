package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/jardin/internal/cli/formatter"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/spf13/cobra"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
		newClientInspectCmd(app),
		newClientActivateCmd(app),
	)
	return cmd
}

func newClientAddCmd(app *App) *cobra.Command {
	var c domain.Client
	var city string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a client as a prospect",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if city != "" {
				cityID, err := resolveCityID(ctx, app, city)
				if err != nil {
					return err
				}
				c.CityID = cityID
			}
			if err := app.Clients.Create(ctx, &c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created client %s [%s]\n", c.Name, formatter.ShortID(c.ID))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "Client name")
	f.StringVar(&c.Address, "address", "", "Street address")
	f.StringVar(&city, "city", "", "City name or ID")
	f.StringVar(&c.ContactName, "contact", "", "Contact person")
	f.StringVar(&c.ContactPhone, "phone", "", "Contact phone")
	f.StringVar(&c.ContactEmail, "email", "", "Contact email")
	f.StringVar(&c.LocationLink, "location", "", "Map link")
	f.StringVar(&c.Notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			clients, err := app.Clients.List(ctx, domain.ClientStatus(status))
			if err != nil {
				return err
			}
			cities, err := cityNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatClientList(clients, cities))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (prospect, active, inactive)")
	return cmd
}

func newClientInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect CLIENT",
		Short: "Show client details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveClientID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Clients.GetByID(ctx, id)
			if err != nil {
				return err
			}
			cities, err := cityNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatClient(c, cities[c.CityID]))
			return nil
		},
	}
}

func newClientActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate CLIENT",
		Short: "Mark a client active and stamp its acceptance date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveClientID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Clients.Activate(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client %s is %s since %s\n",
				c.Name, c.Status, formatter.DatePtr(c.AcceptanceDate))
			return nil
		},
	}
}

func cityNames(ctx context.Context, app *App) (map[string]string, error) {
	cities, err := app.Catalog.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(cities))
	for _, c := range cities {
		out[c.ID] = c.Name
	}
	return out, nil
}

func clientNames(ctx context.Context, app *App) (map[string]string, error) {
	clients, err := app.Clients.List(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(clients))
	for _, c := range clients {
		out[c.ID] = c.Name
	}
	return out, nil
}

func teamNames(ctx context.Context, app *App) (map[string]string, error) {
	teams, err := app.Catalog.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(teams))
	for _, t := range teams {
		out[t.ID] = t.Name
	}
	return out, nil
}
