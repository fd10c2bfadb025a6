package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/alexanderramin/jardin/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	db         *sql.DB
	uow        db.UnitOfWork
	cities     *repository.SQLiteCityRepo
	teams      *repository.SQLiteTeamRepo
	clients    *repository.SQLiteClientRepo
	plans      *repository.SQLitePlanRepo
	tasks      *repository.SQLiteTaskRepo
	quotes     *repository.SQLiteQuoteRepo
	contracts  *repository.SQLiteContractRepo
	selections *repository.SQLiteSelectionRepo
	visits     *repository.SQLiteVisitRepo
}

func setupRepos(t *testing.T) *testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testRepos{
		db:         database,
		uow:        testutil.NewTestUoW(database),
		cities:     repository.NewSQLiteCityRepo(database),
		teams:      repository.NewSQLiteTeamRepo(database),
		clients:    repository.NewSQLiteClientRepo(database),
		plans:      repository.NewSQLitePlanRepo(database),
		tasks:      repository.NewSQLiteTaskRepo(database),
		quotes:     repository.NewSQLiteQuoteRepo(database),
		contracts:  repository.NewSQLiteContractRepo(database),
		selections: repository.NewSQLiteSelectionRepo(database),
		visits:     repository.NewSQLiteVisitRepo(database),
	}
}

func (r *testRepos) catalogService(uow db.UnitOfWork) CatalogService {
	return NewCatalogService(r.plans, r.tasks, r.cities, r.teams, r.clients, uow)
}

func (r *testRepos) quoteService(uow db.UnitOfWork) QuoteService {
	return NewQuoteService(r.quotes, uow, "Jardines del Valle")
}

func (r *testRepos) contractService(uow db.UnitOfWork) ContractService {
	return NewContractService(r.contracts, uow, "Jardines del Valle")
}

func (r *testRepos) visitService(uow db.UnitOfWork) VisitService {
	return NewVisitService(r.visits, uow)
}

// seeded is a small catalog with one client and one team.
//
//	Lawn care:   Mowing, Edging, Leaf blowing
//	Garden beds: Pruning, Weeding
type seeded struct {
	client  *domain.Client
	team    *domain.Team
	city    *domain.City
	lawn    *domain.Plan
	garden  *domain.Plan
	mowing  *domain.Task
	edging  *domain.Task
	blowing *domain.Task
	pruning *domain.Task
	weeding *domain.Task
}

func seedCatalog(t *testing.T, r *testRepos) *seeded {
	t.Helper()
	ctx := context.Background()
	s := &seeded{
		city: testutil.NewTestCity("Santiago"),
		team: testutil.NewTestTeam("North crew"),
		lawn: testutil.NewTestPlan("Lawn care"),
	}
	s.garden = testutil.NewTestPlan("Garden beds")
	s.client = testutil.NewTestClient("Casa Verde", testutil.WithCity(s.city.ID),
		testutil.WithContact("Ana", "+56 9 1234 5678", "ana@example.com"))

	require.NoError(t, r.cities.Create(ctx, s.city))
	require.NoError(t, r.teams.Create(ctx, s.team))
	require.NoError(t, r.clients.Create(ctx, s.client))
	require.NoError(t, r.plans.Create(ctx, s.lawn))
	require.NoError(t, r.plans.Create(ctx, s.garden))

	s.mowing = testutil.NewTestTask(s.lawn.ID, "Mowing")
	s.edging = testutil.NewTestTask(s.lawn.ID, "Edging")
	s.blowing = testutil.NewTestTask(s.lawn.ID, "Leaf blowing")
	s.pruning = testutil.NewTestTask(s.garden.ID, "Pruning")
	s.weeding = testutil.NewTestTask(s.garden.ID, "Weeding")
	for _, task := range []*domain.Task{s.mowing, s.edging, s.blowing, s.pruning, s.weeding} {
		require.NoError(t, r.tasks.Create(ctx, task))
	}
	return s
}

// addedPlans stages both plans: every lawn task included, pruning excluded
// and hidden from crews with a note on weeding.
func (s *seeded) addedPlans() []domain.AddedPlan {
	lawn := testutil.AddedPlanFrom(s.lawn, s.mowing, s.edging, s.blowing)
	garden := testutil.AddedPlanFrom(s.garden, s.pruning, s.weeding)
	garden.CustomName = "Front garden"
	garden.Tasks[0].Included = false
	garden.Tasks[0].VisibleToCrew = false
	garden.Tasks[1].Observation = "beds by the gate only"
	return []domain.AddedPlan{lawn, garden}
}
