package cli

import (
	"github.com/alexanderramin/jardin/internal/config"
	"github.com/alexanderramin/jardin/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Catalog   service.CatalogService
	Clients   service.ClientService
	Quotes    service.QuoteService
	Contracts service.ContractService
	Visits    service.VisitService

	Config *config.Config
	Logger *zap.Logger

	// IsInteractive reports whether stdin is a terminal. Forms and the sheet
	// TUI only run when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "jardin" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "jardin",
		Short:         "Quotes, contracts and crew visits for a landscaping company",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCatalogCmd(app),
		newCityCmd(app),
		newTeamCmd(app),
		newClientCmd(app),
		newQuoteCmd(app),
		newContractCmd(app),
		newVisitCmd(app),
		newServeCmd(app),
		newTokenCmd(app),
		newRemoteCmd(app),
	)

	return root
}
