package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/service"
	"github.com/go-chi/chi/v5"
)

// contractRequest carries the scalar contract fields. On create every field
// but QuoteID and Status is required.
type contractRequest struct {
	ClientID  *string `json:"client_id"`
	TeamID    *string `json:"team_id"`
	QuoteID   *string `json:"quote_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Frequency *string `json:"frequency"`
	VisitDay  *string `json:"visit_day"`
	Status    *string `json:"status"`
}

func (req contractRequest) patch() (domain.ContractPatch, error) {
	p := domain.ContractPatch{TeamID: req.TeamID}
	if req.StartDate != nil {
		d, err := parseDate("start_date", *req.StartDate)
		if err != nil {
			return p, err
		}
		p.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := parseDate("end_date", *req.EndDate)
		if err != nil {
			return p, err
		}
		p.EndDate = &d
	}
	if req.Frequency != nil {
		f, err := domain.ParseFrequency(*req.Frequency)
		if err != nil {
			return p, err
		}
		p.Frequency = &f
	}
	if req.VisitDay != nil {
		d, err := domain.ParseWeekday(*req.VisitDay)
		if err != nil {
			return p, err
		}
		p.VisitDay = &d
	}
	if req.Status != nil {
		st, err := domain.ParseContractStatus(*req.Status)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	return p, nil
}

func (req contractRequest) draft() (*domain.Contract, error) {
	if req.VisitDay == nil {
		return nil, fmt.Errorf("%w: contract visit day is required", domain.ErrValidation)
	}
	p, err := req.patch()
	if err != nil {
		return nil, err
	}
	c := &domain.Contract{
		ClientID: domain.StrFromPtrWithDefault("", req.ClientID),
		QuoteID:  req.QuoteID,
	}
	if p.Status != nil {
		c.Status = *p.Status
		p.Status = nil
	}
	if err := p.Apply(c, time.Now().UTC()); err != nil {
		return nil, err
	}
	return c, nil
}

type composeContractRequest struct {
	contractRequest
	Plans []PlanRequest `json:"plans"`
}

// FromQuoteRequest carries the contract terms and per-task overrides keyed
// by catalog task id.
type FromQuoteRequest struct {
	TeamID    string                     `json:"team_id"`
	StartDate string                     `json:"start_date"`
	EndDate   string                     `json:"end_date"`
	Frequency string                     `json:"frequency"`
	VisitDay  string                     `json:"visit_day"`
	Overrides map[string]OverrideRequest `json:"overrides,omitempty"`
}

type OverrideRequest struct {
	VisibleToCrew *bool   `json:"visible_to_crew,omitempty"`
	Observation   *string `json:"observation,omitempty"`
}

func (req FromQuoteRequest) terms() (service.ContractTerms, error) {
	var t service.ContractTerms
	var err error
	t.TeamID = req.TeamID
	if t.StartDate, err = parseDate("start_date", req.StartDate); err != nil {
		return t, err
	}
	if t.EndDate, err = parseDate("end_date", req.EndDate); err != nil {
		return t, err
	}
	if t.Frequency, err = domain.ParseFrequency(req.Frequency); err != nil {
		return t, err
	}
	if t.VisitDay, err = domain.ParseWeekday(req.VisitDay); err != nil {
		return t, err
	}
	return t, nil
}

func (s *Server) handleListContracts(w http.ResponseWriter, r *http.Request) {
	status := domain.ContractStatus(r.URL.Query().Get("status"))
	contracts, err := s.svc.Contracts.List(r.Context(), status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]Contract, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, toContract(c))
	}
	s.respond(w, http.StatusOK, "", out)
}

func (s *Server) handleGetContract(w http.ResponseWriter, r *http.Request) {
	s.contractDetail(w, r, chi.URLParam(r, "id"), http.StatusOK, "")
}

func (s *Server) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	var req contractRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	s.saveContract(w, r, req, nil)
}

func (s *Server) handleComposeContract(w http.ResponseWriter, r *http.Request) {
	var req composeContractRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	s.saveContract(w, r, req.contractRequest, req.Plans)
}

func (s *Server) saveContract(w http.ResponseWriter, r *http.Request, req contractRequest, plans []PlanRequest) {
	ctx := r.Context()
	draft, err := req.draft()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	added, err := s.buildPlans(ctx, plans)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id, err := s.svc.Contracts.SaveContractWithPlansAndTasks(ctx, draft, added)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.contractDetail(w, r, id, http.StatusCreated, "contract created")
}

func (s *Server) handleContractFromQuote(w http.ResponseWriter, r *http.Request) {
	var req FromQuoteRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	terms, err := req.terms()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	overrides := make(map[string]service.TaskOverride, len(req.Overrides))
	for taskID, o := range req.Overrides {
		overrides[taskID] = service.TaskOverride(o)
	}
	id, err := s.svc.Contracts.CreateContractFromQuote(r.Context(), chi.URLParam(r, "quoteID"), terms, overrides)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.contractDetail(w, r, id, http.StatusCreated, "contract created")
}

func (s *Server) handleUpdateContract(w http.ResponseWriter, r *http.Request) {
	var req contractRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	patch, err := req.patch()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	current, err := s.svc.Contracts.GetDetail(ctx, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Contracts.UpdateContractWithPlansAndTasks(ctx, id, patch, current.Plans); err != nil {
		s.fail(w, r, err)
		return
	}
	s.contractDetail(w, r, id, http.StatusOK, "contract updated")
}

func (s *Server) handleRecomposeContract(w http.ResponseWriter, r *http.Request) {
	var req composeContractRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	patch, err := req.patch()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	added, err := s.buildPlans(ctx, req.Plans)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Contracts.UpdateContractWithPlansAndTasks(ctx, id, patch, added); err != nil {
		s.fail(w, r, err)
		return
	}
	s.contractDetail(w, r, id, http.StatusOK, "contract updated")
}

func (s *Server) contractDetail(w http.ResponseWriter, r *http.Request, id string, status int, message string) {
	d, err := s.svc.Contracts.GetDetail(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, status, message, toContractDetail(d))
}

func (s *Server) handleDeleteContract(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Contracts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "contract deleted", nil)
}

func (s *Server) handleContractDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Contracts.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toDocument(doc))
}
