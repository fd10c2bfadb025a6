package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/document"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/google/uuid"
)

type quoteService struct {
	quotes      repository.QuoteRepo
	uow         db.UnitOfWork
	companyName string
	observer    UseCaseObserver
}

func NewQuoteService(
	quotes repository.QuoteRepo,
	uow db.UnitOfWork,
	companyName string,
	observers ...UseCaseObserver,
) QuoteService {
	return &quoteService{
		quotes:      quotes,
		uow:         uow,
		companyName: companyName,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *quoteService) SaveQuoteWithPlansAndTasks(ctx context.Context, draft *domain.Quote, plans []domain.AddedPlan) (id string, err error) {
	fields := map[string]any{"client_id": draft.ClientID, "plans": len(plans)}
	defer observe(ctx, s.observer, "save-quote", fields)(&err)

	if draft.Status == "" {
		draft.Status = domain.QuotePending
	}
	if err = draft.Validate(); err != nil {
		return "", err
	}
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteClientRepo(tx).GetByID(ctx, draft.ClientID); err != nil {
			return fmt.Errorf("loading client: %w", err)
		}
		if err := repository.NewSQLiteQuoteRepo(tx).Create(ctx, draft); err != nil {
			return fmt.Errorf("creating quote: %w", err)
		}
		return persistSelections(ctx, repository.NewSQLiteSelectionRepo(tx), domain.OriginQuote, draft.ID, plans)
	})
	if err != nil {
		return "", err
	}
	fields["quote_id"] = draft.ID
	return draft.ID, nil
}

func (s *quoteService) UpdateQuoteWithPlansAndTasks(ctx context.Context, quoteID string, patch domain.QuotePatch, plans []domain.AddedPlan) (err error) {
	fields := map[string]any{"quote_id": quoteID, "plans": len(plans)}
	defer observe(ctx, s.observer, "update-quote", fields)(&err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQuotes := repository.NewSQLiteQuoteRepo(tx)
		txSels := repository.NewSQLiteSelectionRepo(tx)

		q, err := txQuotes.GetByID(ctx, quoteID)
		if err != nil {
			return err
		}
		patch.Apply(q)
		if err := q.Validate(); err != nil {
			return err
		}
		if patch.ClientID != nil {
			if _, err := repository.NewSQLiteClientRepo(tx).GetByID(ctx, q.ClientID); err != nil {
				return fmt.Errorf("loading client: %w", err)
			}
		}
		if err := txQuotes.Update(ctx, q); err != nil {
			return fmt.Errorf("updating quote: %w", err)
		}

		removed, err := txSels.DeleteByOrigin(ctx, domain.OriginQuote, quoteID)
		if err != nil {
			return fmt.Errorf("deleting quote selections: %w", err)
		}
		fields["removed_selections"] = removed
		return persistSelections(ctx, txSels, domain.OriginQuote, quoteID, plans)
	})
}

func (s *quoteService) TransitionStatus(ctx context.Context, quoteID string, next domain.QuoteStatus) (*domain.Quote, error) {
	var out *domain.Quote
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQuotes := repository.NewSQLiteQuoteRepo(tx)
		q, err := txQuotes.GetByID(ctx, quoteID)
		if err != nil {
			return err
		}
		if err := q.TransitionTo(next, time.Now().UTC()); err != nil {
			return err
		}
		out = q
		return txQuotes.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *quoteService) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	return s.quotes.GetByID(ctx, id)
}

func (s *quoteService) GetDetail(ctx context.Context, id string) (*QuoteDetail, error) {
	var out *QuoteDetail
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		q, err := repository.NewSQLiteQuoteRepo(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		detail, err := loadDocumentDetail(ctx, tx, domain.OriginQuote, q.ID, q.ClientID)
		if err != nil {
			return err
		}
		out = &QuoteDetail{Quote: q, DocumentDetail: *detail}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *quoteService) List(ctx context.Context, status domain.QuoteStatus) ([]*domain.Quote, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: quote status %q", domain.ErrValidation, status)
	}
	return s.quotes.List(ctx, status)
}

// Delete removes the quote together with its selections.
func (s *quoteService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteSelectionRepo(tx).DeleteByOrigin(ctx, domain.OriginQuote, id); err != nil {
			return fmt.Errorf("deleting quote selections: %w", err)
		}
		return repository.NewSQLiteQuoteRepo(tx).Delete(ctx, id)
	})
}

func (s *quoteService) Document(ctx context.Context, id string) (*document.Document, error) {
	d, err := s.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := document.Assemble(document.Input{
		Kind:             document.KindQuote,
		Number:           DocumentNumber(d.Quote.ID),
		Date:             d.Quote.CreationDate,
		CompanyName:      s.companyName,
		Client:           *d.Client,
		CityName:         d.CityName,
		Plans:            d.Plans,
		Considerations:   d.Quote.Considerations,
		EconomicProposal: d.Quote.EconomicProposal,
	})
	return &doc, nil
}

func (s *quoteService) PDF(ctx context.Context, id string) ([]byte, error) {
	doc, err := s.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := document.RenderPDF(*doc)
	if err != nil {
		return nil, fmt.Errorf("rendering quote pdf: %w", err)
	}
	return data, nil
}
