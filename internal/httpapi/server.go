// Package httpapi exposes the jardin services over a JSON REST API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/alexanderramin/jardin/internal/auth"
	"github.com/alexanderramin/jardin/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Services are the use cases served by the API.
type Services struct {
	Catalog   service.CatalogService
	Clients   service.ClientService
	Quotes    service.QuoteService
	Contracts service.ContractService
	Visits    service.VisitService
}

type Server struct {
	svc     Services
	issuer  *auth.Issuer
	logger  *zap.Logger
	timeout time.Duration
}

// NewServer builds the API. A zero timeout defaults to 60 seconds.
func NewServer(svc Services, issuer *auth.Issuer, logger *zap.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Server{svc: svc, issuer: issuer, logger: logger.Named("http"), timeout: timeout}
}

// Routes returns the root handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Timeout(s.timeout))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/catalog", s.handleGetCatalog)

			r.Route("/plans", func(r chi.Router) {
				r.Get("/", s.handleListPlans)
				r.Post("/", s.handleCreatePlan)
				r.Get("/{id}", s.handleGetPlan)
				r.Put("/{id}", s.handleUpdatePlan)
				r.Delete("/{id}", s.handleDeletePlan)
			})
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", s.handleListTasks)
				r.Post("/", s.handleCreateTask)
				r.Get("/{id}", s.handleGetTask)
				r.Put("/{id}", s.handleUpdateTask)
				r.Delete("/{id}", s.handleDeleteTask)
			})
			r.Route("/cities", func(r chi.Router) {
				r.Get("/", s.handleListCities)
				r.Post("/", s.handleCreateCity)
				r.Get("/{id}", s.handleGetCity)
				r.Put("/{id}", s.handleUpdateCity)
				r.Delete("/{id}", s.handleDeleteCity)
			})
			r.Route("/teams", func(r chi.Router) {
				r.Get("/", s.handleListTeams)
				r.Post("/", s.handleCreateTeam)
				r.Get("/{id}", s.handleGetTeam)
				r.Put("/{id}", s.handleUpdateTeam)
				r.Delete("/{id}", s.handleDeleteTeam)
			})
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", s.handleListClients)
				r.Post("/", s.handleCreateClient)
				r.Get("/{id}", s.handleGetClient)
				r.Put("/{id}", s.handleUpdateClient)
				r.Delete("/{id}", s.handleDeleteClient)
			})
			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", s.handleListQuotes)
				r.Post("/", s.handleCreateQuote)
				r.Post("/compose", s.handleComposeQuote)
				r.Get("/{id}", s.handleGetQuote)
				r.Put("/{id}", s.handleUpdateQuote)
				r.Delete("/{id}", s.handleDeleteQuote)
				r.Put("/{id}/compose", s.handleRecomposeQuote)
				r.Put("/{id}/status", s.handleQuoteStatus)
				r.Get("/{id}/document", s.handleQuoteDocument)
				r.Get("/{id}/pdf", s.handleQuotePDF)
			})
			r.Route("/contracts", func(r chi.Router) {
				r.Get("/", s.handleListContracts)
				r.Post("/", s.handleCreateContract)
				r.Post("/compose", s.handleComposeContract)
				r.Post("/from-quote/{quoteID}", s.handleContractFromQuote)
				r.Get("/{id}", s.handleGetContract)
				r.Put("/{id}", s.handleUpdateContract)
				r.Delete("/{id}", s.handleDeleteContract)
				r.Put("/{id}/compose", s.handleRecomposeContract)
				r.Get("/{id}/document", s.handleContractDocument)
			})
			r.Route("/visits", func(r chi.Router) {
				r.Get("/", s.handleListVisits)
				r.Post("/", s.handleCreateVisit)
				r.Get("/route", s.handleRoute)
				r.Post("/schedule/{contractID}", s.handleScheduleVisits)
				r.Get("/{id}", s.handleGetVisit)
				r.Put("/{id}", s.handleRescheduleVisit)
				r.Delete("/{id}", s.handleDeleteVisit)
				r.Get("/{id}/sheet", s.handleVisitSheet)
				r.Post("/{id}/close", s.handleCloseVisit)
				r.Put("/{id}/reschedule", s.handleRescheduleVisit)
				r.Put("/{id}/cancel", s.handleCancelVisit)
				r.Put("/{id}/start", s.handleStartVisit)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{"status": "available"}
	if err := writeJSON(w, http.StatusOK, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
