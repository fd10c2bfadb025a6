package httpapi

import (
	"net/http"

	"github.com/alexanderramin/jardin/internal/auth"
	"github.com/alexanderramin/jardin/internal/dispatch"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/alexanderramin/jardin/internal/scheduler"
	"github.com/go-chi/chi/v5"
)

type visitRequest struct {
	ContractID string `json:"contract_id"`
	TeamID     string `json:"team_id"`
	Date       string `json:"date"`
	Type       string `json:"type"`
}

type rescheduleRequest struct {
	Date string `json:"date"`
}

// CloseVisitRequest finishes a visit. ClosedBy defaults to the caller.
type CloseVisitRequest struct {
	DoneTaskIDs []string `json:"done_task_ids"`
	Observation string   `json:"observation,omitempty"`
	ClosedBy    string   `json:"closed_by,omitempty"`
}

func (s *Server) handleListVisits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.VisitFilter{
		ContractID: q.Get("contract_id"),
		TeamID:     q.Get("team_id"),
		Status:     domain.VisitStatus(q.Get("status")),
	}
	if v := q.Get("from"); v != "" {
		d, err := parseDate("from", v)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		f.From = &d
	}
	if v := q.Get("to"); v != "" {
		d, err := parseDate("to", v)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		f.To = &d
	}
	visits, err := s.svc.Visits.List(r.Context(), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toVisits(visits))
}

// handleRoute lists the stops of a date range, one week by default.
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := scheduler.WeekRange(timeNow())
	if v := q.Get("from"); v != "" {
		d, err := parseDate("from", v)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		from, to = d, d.AddDate(0, 0, 6)
	}
	if v := q.Get("to"); v != "" {
		d, err := parseDate("to", v)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		to = d
	}
	stops, err := s.svc.Visits.Route(r.Context(), from, to, q.Get("team_id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toRoute(stops))
}

func (s *Server) handleGetVisit(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Visits.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toVisit(v))
}

func (s *Server) handleCreateVisit(w http.ResponseWriter, r *http.Request) {
	var req visitRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	v := &domain.Visit{
		ContractID: req.ContractID,
		TeamID:     req.TeamID,
		Date:       date,
		Type:       domain.VisitType(req.Type),
	}
	if err := s.svc.Visits.Create(r.Context(), v); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, "visit created", toVisit(v))
}

func (s *Server) handleDeleteVisit(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Visits.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "visit deleted", nil)
}

func (s *Server) handleScheduleVisits(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Visits.GenerateAgenda(r.Context(), chi.URLParam(r, "contractID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := ScheduleResult{Message: res.Message, Created: toVisits(res.Created)}
	status := http.StatusOK
	if len(out.Created) > 0 {
		status = http.StatusCreated
	}
	s.respond(w, status, res.Message, out)
}

func (s *Server) handleVisitSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := s.svc.Visits.Sheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toSheet(sheet))
}

func (s *Server) handleCloseVisit(w http.ResponseWriter, r *http.Request) {
	var req CloseVisitRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	closedBy := req.ClosedBy
	if session, ok := auth.SessionFrom(r.Context()); ok {
		closedBy = domain.CoalesceStr(closedBy, session.User)
	}
	v, err := s.svc.Visits.Close(r.Context(), dispatch.CloseRequest{
		VisitID:     chi.URLParam(r, "id"),
		DoneTaskIDs: req.DoneTaskIDs,
		Observation: req.Observation,
		ClosedBy:    closedBy,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "visit closed", toVisit(v))
}

func (s *Server) handleRescheduleVisit(w http.ResponseWriter, r *http.Request) {
	var req rescheduleRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	v, err := s.svc.Visits.Reschedule(r.Context(), chi.URLParam(r, "id"), date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "visit rescheduled", toVisit(v))
}

func (s *Server) handleCancelVisit(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Visits.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "visit cancelled", toVisit(v))
}

func (s *Server) handleStartVisit(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Visits.Start(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "visit started", toVisit(v))
}
