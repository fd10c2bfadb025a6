package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	cities := NewSQLiteCityRepo(db)
	repo := NewSQLiteClientRepo(db)

	city := testutil.NewTestCity("Santiago")
	require.NoError(t, cities.Create(ctx, city))

	c := testutil.NewTestClient("Jardines del Sur",
		testutil.WithCity(city.ID),
		testutil.WithContact("Marta", "+56 9 1234", "marta@example.com"))
	c.LocationLink = "https://maps.example/abc"
	require.NoError(t, repo.Create(ctx, c))

	fetched, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jardines del Sur", fetched.Name)
	assert.Equal(t, city.ID, fetched.CityID)
	assert.Equal(t, domain.ClientProspect, fetched.Status)
	assert.Equal(t, "marta@example.com", fetched.ContactEmail)
	assert.Equal(t, "https://maps.example/abc", fetched.LocationLink)
	assert.Nil(t, fetched.AcceptanceDate)
}

func TestClientRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientRepo_UpdateAndFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteClientRepo(db)

	a := testutil.NewTestClient("Alpha")
	b := testutil.NewTestClient("Beta")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	accepted := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	b.Status = domain.ClientActive
	b.AcceptanceDate = &accepted
	require.NoError(t, repo.Update(ctx, b))

	active, err := repo.List(ctx, domain.ClientActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Beta", active[0].Name)
	require.NotNil(t, active[0].AcceptanceDate)
	assert.Equal(t, "2025-04-02", active[0].AcceptanceDate.Format("2006-01-02"))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClientRepo_UpdateMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)

	err := repo.Update(context.Background(), testutil.NewTestClient("Ghost"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCityAndTeamRepo_CRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	cities := NewSQLiteCityRepo(db)
	teams := NewSQLiteTeamRepo(db)

	city := testutil.NewTestCity("Valparaiso")
	require.NoError(t, cities.Create(ctx, city))
	city.Region = "Valparaiso"
	require.NoError(t, cities.Update(ctx, city))
	got, err := cities.GetByID(ctx, city.ID)
	require.NoError(t, err)
	assert.Equal(t, "Valparaiso", got.Region)

	team := testutil.NewTestTeam("Cuadrilla Norte")
	require.NoError(t, teams.Create(ctx, team))
	list, err := teams.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Leader of Cuadrilla Norte", list[0].Leader)

	require.NoError(t, teams.Delete(ctx, team.ID))
	assert.ErrorIs(t, teams.Delete(ctx, team.ID), domain.ErrNotFound)
}
