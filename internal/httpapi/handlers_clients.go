package httpapi

import (
	"net/http"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/go-chi/chi/v5"
)

type clientRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	CityID       *string `json:"city_id"`
	Status       *string `json:"status"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	ContactEmail *string `json:"contact_email"`
	LocationLink *string `json:"location_link"`
	Notes        *string `json:"notes"`
}

func (req clientRequest) apply(c *domain.Client) {
	c.Name = domain.StrFromPtrWithDefault(c.Name, req.Name)
	c.Address = domain.StrFromPtrWithDefault(c.Address, req.Address)
	c.CityID = domain.StrFromPtrWithDefault(c.CityID, req.CityID)
	c.Status = domain.ClientStatus(domain.StrFromPtrWithDefault(string(c.Status), req.Status))
	c.ContactName = domain.StrFromPtrWithDefault(c.ContactName, req.ContactName)
	c.ContactPhone = domain.StrFromPtrWithDefault(c.ContactPhone, req.ContactPhone)
	c.ContactEmail = domain.StrFromPtrWithDefault(c.ContactEmail, req.ContactEmail)
	c.LocationLink = domain.StrFromPtrWithDefault(c.LocationLink, req.LocationLink)
	c.Notes = domain.StrFromPtrWithDefault(c.Notes, req.Notes)
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	status := domain.ClientStatus(r.URL.Query().Get("status"))
	clients, err := s.svc.Clients.List(r.Context(), status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClient(c))
	}
	s.respond(w, http.StatusOK, "", out)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Clients.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toClient(c))
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	c := &domain.Client{}
	req.apply(c)
	if err := s.svc.Clients.Create(r.Context(), c); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, "client created", toClient(c))
}

// handleUpdateClient merges the provided fields into the stored client.
// Moving to active stamps the acceptance date through Activate.
func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	ctx := r.Context()
	c, err := s.svc.Clients.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	activate := req.Status != nil && domain.ClientStatus(*req.Status) == domain.ClientActive && c.Status != domain.ClientActive
	if activate {
		req.Status = nil
	}
	req.apply(c)
	if err := s.svc.Clients.Update(ctx, c); err != nil {
		s.fail(w, r, err)
		return
	}
	if activate {
		if c, err = s.svc.Clients.Activate(ctx, c.ID); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	s.respond(w, http.StatusOK, "client updated", toClient(c))
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Clients.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "client deleted", nil)
}
