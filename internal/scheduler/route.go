package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/jardin/internal/domain"
)

// RouteStop is one visit on a crew's route sheet.
type RouteStop struct {
	Visit      domain.Visit
	ClientName string
	Address    string
	TeamName   string
	Tasks      []string
}

func statusPriority(s domain.VisitStatus) int {
	switch s {
	case domain.VisitInProgress:
		return 0
	case domain.VisitScheduled, domain.VisitRescheduled:
		return 1
	case domain.VisitCompleted:
		return 2
	default:
		return 3
	}
}

// SortRoute orders stops deterministically:
// 1. Date ascending
// 2. Team name
// 3. Open visits before completed, cancelled last
// 4. Client name
// 5. Visit ID
func SortRoute(stops []RouteStop) {
	sort.SliceStable(stops, func(i, j int) bool {
		a, b := stops[i], stops[j]
		if !a.Visit.Date.Equal(b.Visit.Date) {
			return a.Visit.Date.Before(b.Visit.Date)
		}
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		if pa, pb := statusPriority(a.Visit.Status), statusPriority(b.Visit.Status); pa != pb {
			return pa < pb
		}
		if a.ClientName != b.ClientName {
			return a.ClientName < b.ClientName
		}
		return a.Visit.ID < b.Visit.ID
	})
}

// WeekRange returns the Monday..Sunday range containing d.
func WeekRange(d time.Time) (time.Time, time.Time) {
	d = truncateDay(d)
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}
