package httpapi

import (
	"net/http"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/go-chi/chi/v5"
)

type planRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (req planRequest) apply(p *domain.Plan) {
	p.Name = domain.StrFromPtrWithDefault(p.Name, req.Name)
	p.Description = domain.StrFromPtrWithDefault(p.Description, req.Description)
}

type taskRequest struct {
	PlanID *string `json:"plan_id"`
	Name   *string `json:"name"`
	Kind   *string `json:"kind"`
}

func (req taskRequest) apply(t *domain.Task) {
	t.PlanID = domain.StrFromPtrWithDefault(t.PlanID, req.PlanID)
	t.Name = domain.StrFromPtrWithDefault(t.Name, req.Name)
	t.Kind = domain.TaskKind(domain.StrFromPtrWithDefault(string(t.Kind), req.Kind))
}

type cityRequest struct {
	Name   *string `json:"name"`
	Region *string `json:"region"`
}

func (req cityRequest) apply(c *domain.City) {
	c.Name = domain.StrFromPtrWithDefault(c.Name, req.Name)
	c.Region = domain.StrFromPtrWithDefault(c.Region, req.Region)
}

type teamRequest struct {
	Name   *string `json:"name"`
	Leader *string `json:"leader"`
}

func (req teamRequest) apply(t *domain.Team) {
	t.Name = domain.StrFromPtrWithDefault(t.Name, req.Name)
	t.Leader = domain.StrFromPtrWithDefault(t.Leader, req.Leader)
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.svc.Catalog.Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toCatalog(catalog))
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.svc.Catalog.ListPlans(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]Plan, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlan(p))
	}
	s.respond(w, http.StatusOK, "", out)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Catalog.GetPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toPlan(p))
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	p := &domain.Plan{}
	req.apply(p)
	if err := s.svc.Catalog.CreatePlan(r.Context(), p); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, "plan created", toPlan(p))
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	ctx := r.Context()
	p, err := s.svc.Catalog.GetPlan(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req.apply(p)
	if err := s.svc.Catalog.UpdatePlan(ctx, p); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "plan updated", toPlan(p))
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Catalog.DeletePlan(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "plan deleted", nil)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Catalog.ListTasks(r.Context(), r.URL.Query().Get("plan_id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTask(t))
	}
	s.respond(w, http.StatusOK, "", out)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Catalog.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toTask(t))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	t := &domain.Task{}
	req.apply(t)
	if err := s.svc.Catalog.CreateTask(r.Context(), t); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, "task created", toTask(t))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	ctx := r.Context()
	t, err := s.svc.Catalog.GetTask(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req.apply(t)
	if err := s.svc.Catalog.UpdateTask(ctx, t); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "task updated", toTask(t))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Catalog.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "task deleted", nil)
}

func (s *Server) handleListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.svc.Catalog.ListCities(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]City, 0, len(cities))
	for _, c := range cities {
		out = append(out, toCity(c))
	}
	s.respond(w, http.StatusOK, "", out)
}

func (s *Server) handleGetCity(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Catalog.GetCity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toCity(c))
}

func (s *Server) handleCreateCity(w http.ResponseWriter, r *http.Request) {
	var req cityRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	c := &domain.City{}
	req.apply(c)
	if err := s.svc.Catalog.CreateCity(r.Context(), c); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, "city created", toCity(c))
}

func (s *Server) handleUpdateCity(w http.ResponseWriter, r *http.Request) {
	var req cityRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	ctx := r.Context()
	c, err := s.svc.Catalog.GetCity(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req.apply(c)
	if err := s.svc.Catalog.UpdateCity(ctx, c); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "city updated", toCity(c))
}

func (s *Server) handleDeleteCity(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Catalog.DeleteCity(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "city deleted", nil)
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.svc.Catalog.ListTeams(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeam(t))
	}
	s.respond(w, http.StatusOK, "", out)
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Catalog.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toTeam(t))
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	t := &domain.Team{}
	req.apply(t)
	if err := s.svc.Catalog.CreateTeam(r.Context(), t); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, "team created", toTeam(t))
}

func (s *Server) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	ctx := r.Context()
	t, err := s.svc.Catalog.GetTeam(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req.apply(t)
	if err := s.svc.Catalog.UpdateTeam(ctx, t); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "team updated", toTeam(t))
}

func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Catalog.DeleteTeam(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "team deleted", nil)
}
