package httpapi

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/go-chi/chi/v5"
)

type quoteRequest struct {
	ClientID         *string `json:"client_id"`
	Considerations   *string `json:"considerations"`
	EconomicProposal *string `json:"economic_proposal"`
}

func (req quoteRequest) patch() domain.QuotePatch {
	return domain.QuotePatch{
		ClientID:         req.ClientID,
		Considerations:   req.Considerations,
		EconomicProposal: req.EconomicProposal,
	}
}

func (req quoteRequest) draft() *domain.Quote {
	q := &domain.Quote{}
	req.patch().Apply(q)
	return q
}

// composeQuoteRequest creates or rewrites a quote together with its plans.
type composeQuoteRequest struct {
	quoteRequest
	Plans []PlanRequest `json:"plans"`
}

type quoteStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	status := domain.QuoteStatus(r.URL.Query().Get("status"))
	quotes, err := s.svc.Quotes.List(r.Context(), status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toQuote(q))
	}
	s.respond(w, http.StatusOK, "", out)
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Quotes.GetDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toQuoteDetail(d))
}

// handleCreateQuote creates a quote with no plans.
func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	s.saveQuote(w, r, req, nil)
}

func (s *Server) handleComposeQuote(w http.ResponseWriter, r *http.Request) {
	var req composeQuoteRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	s.saveQuote(w, r, req.quoteRequest, req.Plans)
}

func (s *Server) saveQuote(w http.ResponseWriter, r *http.Request, req quoteRequest, plans []PlanRequest) {
	ctx := r.Context()
	added, err := s.buildPlans(ctx, plans)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id, err := s.svc.Quotes.SaveQuoteWithPlansAndTasks(ctx, req.draft(), added)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.Quotes.GetDetail(ctx, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, "quote created", toQuoteDetail(d))
}

// handleUpdateQuote edits the scalar fields and keeps the current plans.
func (s *Server) handleUpdateQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	current, err := s.svc.Quotes.GetDetail(ctx, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Quotes.UpdateQuoteWithPlansAndTasks(ctx, id, req.patch(), current.Plans); err != nil {
		s.fail(w, r, err)
		return
	}
	s.quoteDetail(w, r, id, "quote updated")
}

// handleRecomposeQuote replaces every plan of the quote with the request's.
func (s *Server) handleRecomposeQuote(w http.ResponseWriter, r *http.Request) {
	var req composeQuoteRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	added, err := s.buildPlans(ctx, req.Plans)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Quotes.UpdateQuoteWithPlansAndTasks(ctx, id, req.patch(), added); err != nil {
		s.fail(w, r, err)
		return
	}
	s.quoteDetail(w, r, id, "quote updated")
}

func (s *Server) quoteDetail(w http.ResponseWriter, r *http.Request, id, message string) {
	d, err := s.svc.Quotes.GetDetail(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, message, toQuoteDetail(d))
}

func (s *Server) handleQuoteStatus(w http.ResponseWriter, r *http.Request) {
	var req quoteStatusRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	status, err := domain.ParseQuoteStatus(req.Status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	q, err := s.svc.Quotes.TransitionStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "quote is "+string(q.Status), toQuote(q))
}

func (s *Server) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Quotes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "quote deleted", nil)
}

func (s *Server) handleQuoteDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Quotes.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, "", toDocument(doc))
}

func (s *Server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pdf, err := s.svc.Quotes.PDF(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="quote-`+id+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
