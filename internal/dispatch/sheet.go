// Package dispatch holds a crew's local working state for one visit. Marks
// and notes stay in memory until the sheet is closed through the visit
// service.
package dispatch

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/jardin/internal/domain"
)

// SheetTask is one visible task of the visit's contract.
type SheetTask struct {
	TaskSelectionID string
	TaskID          string
	Name            string
	PlanName        string
	Note            string
	Done            bool
}

// Sheet is the crew's view of one visit.
type Sheet struct {
	Visit       domain.Visit
	ClientName  string
	Address     string
	TeamName    string
	Tasks       []SheetTask
	Observation string
}

// CloseRequest is what a crew submits to finish a visit.
type CloseRequest struct {
	VisitID     string   `json:"visit_id"`
	DoneTaskIDs []string `json:"done_task_ids"`
	Observation string   `json:"observation"`
	ClosedBy    string   `json:"closed_by"`
}

// Mark sets the done state of one task.
func (s *Sheet) Mark(taskSelectionID string, done bool) error {
	for i := range s.Tasks {
		if s.Tasks[i].TaskSelectionID == taskSelectionID {
			s.Tasks[i].Done = done
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", taskSelectionID, domain.ErrNotFound)
}

// Toggle flips the done state of the task at index i.
func (s *Sheet) Toggle(i int) {
	if i >= 0 && i < len(s.Tasks) {
		s.Tasks[i].Done = !s.Tasks[i].Done
	}
}

// MarkAll marks every task done.
func (s *Sheet) MarkAll() {
	for i := range s.Tasks {
		s.Tasks[i].Done = true
	}
}

func (s *Sheet) SetObservation(text string) {
	s.Observation = strings.TrimSpace(text)
}

// DoneIDs returns the task selections marked done, in sheet order.
func (s *Sheet) DoneIDs() []string {
	var out []string
	for _, t := range s.Tasks {
		if t.Done {
			out = append(out, t.TaskSelectionID)
		}
	}
	return out
}

func (s *Sheet) DoneCount() int {
	return len(s.DoneIDs())
}

// CanClose reports whether the visit is open and at least one task is done.
func (s *Sheet) CanClose() bool {
	return s.Visit.IsOpen() && s.DoneCount() > 0
}

// CloseRequest builds the request that persists this sheet.
func (s *Sheet) CloseRequest(closedBy string) (CloseRequest, error) {
	if !s.Visit.IsOpen() {
		return CloseRequest{}, fmt.Errorf("%w: visit is %s", domain.ErrInvalidTransition, s.Visit.Status)
	}
	done := s.DoneIDs()
	if len(done) == 0 {
		return CloseRequest{}, domain.ErrNoTasksDone
	}
	return CloseRequest{
		VisitID:     s.Visit.ID,
		DoneTaskIDs: done,
		Observation: s.Observation,
		ClosedBy:    closedBy,
	}, nil
}
