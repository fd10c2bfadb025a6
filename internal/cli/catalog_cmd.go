package cli

import (
	"fmt"

	"github.com/alexanderramin/jardin/internal/cli/formatter"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage service plans and their tasks",
	}

	plan := &cobra.Command{Use: "plan", Short: "Manage plans"}
	plan.AddCommand(newPlanAddCmd(app))
	task := &cobra.Command{Use: "task", Short: "Manage tasks"}
	task.AddCommand(newTaskAddCmd(app))

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogImportCmd(app),
		plan,
		task,
	)
	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plans with their tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.Catalog.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCatalog(catalog))
			return nil
		},
	}
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import plans and tasks from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Catalog.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d plans with %d tasks\n", result.PlanCount, result.TaskCount)
			return nil
		},
	}
}

func newPlanAddCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Plan{Name: name, Description: description}
			if err := app.Catalog.CreatePlan(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s [%s]\n", p.Name, formatter.ShortID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&description, "description", "", "Plan description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var planInput, name string
	var custom bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, planInput)
			if err != nil {
				return err
			}
			kind := domain.TaskPredefined
			if custom {
				kind = domain.TaskCustom
			}
			t := &domain.Task{PlanID: planID, Name: name, Kind: kind}
			if err := app.Catalog.CreateTask(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s [%s]\n", t.Name, formatter.ShortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&planInput, "plan", "", "Plan name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().BoolVar(&custom, "custom", false, "Mark the task as custom rather than predefined")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "city", Short: "Manage cities"}

	var name, region string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a city",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.City{Name: name, Region: region}
			if err := app.Catalog.CreateCity(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created city %s [%s]\n", c.Name, formatter.ShortID(c.ID))
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "City name")
	add.Flags().StringVar(&region, "region", "", "Region")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List cities",
		RunE: func(cmd *cobra.Command, args []string) error {
			cities, err := app.Catalog.ListCities(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCities(cities))
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "team", Short: "Manage crews"}

	var name, leader string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Team{Name: name, Leader: leader}
			if err := app.Catalog.CreateTeam(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created team %s [%s]\n", t.Name, formatter.ShortID(t.ID))
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Team name")
	add.Flags().StringVar(&leader, "leader", "", "Crew leader")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := app.Catalog.ListTeams(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTeams(teams))
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
