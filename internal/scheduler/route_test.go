package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSortRoute(t *testing.T) {
	d1, d2 := day(2025, 3, 4), day(2025, 3, 5)
	stops := []RouteStop{
		{Visit: domain.Visit{ID: "v5", Date: d2, Status: domain.VisitScheduled}, TeamName: "A", ClientName: "Zeta"},
		{Visit: domain.Visit{ID: "v4", Date: d1, Status: domain.VisitCancelled}, TeamName: "A", ClientName: "Alfa"},
		{Visit: domain.Visit{ID: "v3", Date: d1, Status: domain.VisitScheduled}, TeamName: "B", ClientName: "Alfa"},
		{Visit: domain.Visit{ID: "v2", Date: d1, Status: domain.VisitScheduled}, TeamName: "A", ClientName: "Beta"},
		{Visit: domain.Visit{ID: "v1", Date: d1, Status: domain.VisitInProgress}, TeamName: "A", ClientName: "Omega"},
	}
	SortRoute(stops)

	var ids []string
	for _, s := range stops {
		ids = append(ids, s.Visit.ID)
	}
	assert.Equal(t, []string{"v1", "v2", "v4", "v3", "v5"}, ids)
}

func TestWeekRange(t *testing.T) {
	// Wednesday.
	from, to := WeekRange(time.Date(2025, 3, 5, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, day(2025, 3, 3), from)
	assert.Equal(t, day(2025, 3, 9), to)

	// Sunday belongs to the week that started the previous Monday.
	from, _ = WeekRange(day(2025, 3, 9))
	assert.Equal(t, day(2025, 3, 3), from)
}
