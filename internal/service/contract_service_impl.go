package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/jardin/internal/composer"
	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/document"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/google/uuid"
)

type contractService struct {
	contracts   repository.ContractRepo
	uow         db.UnitOfWork
	companyName string
	observer    UseCaseObserver
}

func NewContractService(
	contracts repository.ContractRepo,
	uow db.UnitOfWork,
	companyName string,
	observers ...UseCaseObserver,
) ContractService {
	return &contractService{
		contracts:   contracts,
		uow:         uow,
		companyName: companyName,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *contractService) SaveContractWithPlansAndTasks(ctx context.Context, draft *domain.Contract, plans []domain.AddedPlan) (id string, err error) {
	fields := map[string]any{"client_id": draft.ClientID, "plans": len(plans)}
	defer observe(ctx, s.observer, "save-contract", fields)(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return saveContractTx(ctx, tx, draft, plans)
	})
	if err != nil {
		return "", err
	}
	fields["contract_id"] = draft.ID
	return draft.ID, nil
}

// saveContractTx inserts the contract and its selections, then activates the
// client and accepts the originating quote. Every write goes through tx.
func saveContractTx(ctx context.Context, tx db.DBTX, draft *domain.Contract, plans []domain.AddedPlan) error {
	if draft.Status == "" {
		draft.Status = domain.ContractActive
	}
	if err := draft.Validate(); err != nil {
		return err
	}
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	now := time.Now().UTC()

	txClients := repository.NewSQLiteClientRepo(tx)
	txQuotes := repository.NewSQLiteQuoteRepo(tx)

	client, err := txClients.GetByID(ctx, draft.ClientID)
	if err != nil {
		return fmt.Errorf("loading client: %w", err)
	}
	if _, err := repository.NewSQLiteTeamRepo(tx).GetByID(ctx, draft.TeamID); err != nil {
		return fmt.Errorf("loading team: %w", err)
	}
	var quote *domain.Quote
	if draft.QuoteID != nil && *draft.QuoteID != "" {
		quote, err = txQuotes.GetByID(ctx, *draft.QuoteID)
		if err != nil {
			return fmt.Errorf("loading quote: %w", err)
		}
		if quote.ClientID != draft.ClientID {
			return fmt.Errorf("%w: quote %s belongs to another client", domain.ErrValidation, quote.ID)
		}
	}

	if err := repository.NewSQLiteContractRepo(tx).Create(ctx, draft); err != nil {
		return fmt.Errorf("creating contract: %w", err)
	}
	if err := persistSelections(ctx, repository.NewSQLiteSelectionRepo(tx), domain.OriginContract, draft.ID, plans); err != nil {
		return err
	}

	if err := client.Activate(now); err != nil {
		return fmt.Errorf("activating client: %w", err)
	}
	if err := txClients.Update(ctx, client); err != nil {
		return fmt.Errorf("activating client: %w", err)
	}

	if quote != nil {
		if err := quote.TransitionTo(domain.QuoteAccepted, now); err != nil {
			return fmt.Errorf("accepting quote: %w", err)
		}
		if err := txQuotes.Update(ctx, quote); err != nil {
			return fmt.Errorf("accepting quote: %w", err)
		}
	}
	return nil
}

func (s *contractService) UpdateContractWithPlansAndTasks(ctx context.Context, contractID string, patch domain.ContractPatch, plans []domain.AddedPlan) (err error) {
	fields := map[string]any{"contract_id": contractID, "plans": len(plans)}
	defer observe(ctx, s.observer, "update-contract", fields)(&err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txContracts := repository.NewSQLiteContractRepo(tx)
		txSels := repository.NewSQLiteSelectionRepo(tx)

		c, err := txContracts.GetByID(ctx, contractID)
		if err != nil {
			return err
		}
		if err := patch.Apply(c, time.Now().UTC()); err != nil {
			return err
		}
		if patch.TeamID != nil {
			if _, err := repository.NewSQLiteTeamRepo(tx).GetByID(ctx, c.TeamID); err != nil {
				return fmt.Errorf("loading team: %w", err)
			}
		}
		if err := txContracts.Update(ctx, c); err != nil {
			return fmt.Errorf("updating contract: %w", err)
		}

		removed, err := txSels.DeleteByOrigin(ctx, domain.OriginContract, contractID)
		if err != nil {
			return fmt.Errorf("deleting contract selections: %w", err)
		}
		fields["removed_selections"] = removed
		return persistSelections(ctx, txSels, domain.OriginContract, contractID, plans)
	})
}

func (s *contractService) CreateContractFromQuote(ctx context.Context, quoteID string, terms ContractTerms, overrides map[string]TaskOverride) (id string, err error) {
	fields := map[string]any{"quote_id": quoteID}
	defer observe(ctx, s.observer, "contract-from-quote", fields)(&err)

	var draft *domain.Contract
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		q, err := repository.NewSQLiteQuoteRepo(tx).GetByID(ctx, quoteID)
		if err != nil {
			return err
		}
		catalog, err := loadCatalogTx(ctx, tx)
		if err != nil {
			return err
		}
		sels, err := repository.NewSQLiteSelectionRepo(tx).ListByOrigin(ctx, domain.OriginQuote, q.ID)
		if err != nil {
			return fmt.Errorf("listing quote selections: %w", err)
		}
		if len(sels) == 0 {
			return fmt.Errorf("%w: quote %s has no plans", domain.ErrValidation, q.ID)
		}
		plans := applyOverrides(composer.FromSelections(catalog, sels).AddedPlans(), overrides)
		fields["plans"] = len(plans)

		draft = &domain.Contract{
			ClientID:  q.ClientID,
			TeamID:    terms.TeamID,
			QuoteID:   &q.ID,
			StartDate: terms.StartDate,
			EndDate:   terms.EndDate,
			Frequency: terms.Frequency,
			VisitDay:  terms.VisitDay,
			Status:    domain.ContractActive,
		}
		return saveContractTx(ctx, tx, draft, plans)
	})
	if err != nil {
		return "", err
	}
	fields["contract_id"] = draft.ID
	return draft.ID, nil
}

func applyOverrides(plans []domain.AddedPlan, overrides map[string]TaskOverride) []domain.AddedPlan {
	if len(overrides) == 0 {
		return plans
	}
	for i := range plans {
		for j := range plans[i].Tasks {
			t := &plans[i].Tasks[j]
			o, ok := overrides[t.TaskID]
			if !ok {
				continue
			}
			t.VisibleToCrew = domain.BoolFromPtrWithDefault(t.VisibleToCrew, o.VisibleToCrew)
			t.Observation = domain.StrFromPtrWithDefault(t.Observation, o.Observation)
		}
	}
	return plans
}

func (s *contractService) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	return s.contracts.GetByID(ctx, id)
}

func (s *contractService) GetDetail(ctx context.Context, id string) (*ContractDetail, error) {
	var out *ContractDetail
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		c, err := repository.NewSQLiteContractRepo(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		team, err := repository.NewSQLiteTeamRepo(tx).GetByID(ctx, c.TeamID)
		if err != nil {
			return fmt.Errorf("loading team: %w", err)
		}
		detail, err := loadDocumentDetail(ctx, tx, domain.OriginContract, c.ID, c.ClientID)
		if err != nil {
			return err
		}
		out = &ContractDetail{Contract: c, TeamName: team.Name, DocumentDetail: *detail}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *contractService) List(ctx context.Context, status domain.ContractStatus) ([]*domain.Contract, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: contract status %q", domain.ErrValidation, status)
	}
	return s.contracts.List(ctx, status)
}

// Delete removes the contract, its selections and, through the foreign key,
// its visits.
func (s *contractService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteSelectionRepo(tx).DeleteByOrigin(ctx, domain.OriginContract, id); err != nil {
			return fmt.Errorf("deleting contract selections: %w", err)
		}
		return repository.NewSQLiteContractRepo(tx).Delete(ctx, id)
	})
}

// Document assembles the contract. Terms come from the originating quote
// when there is one.
func (s *contractService) Document(ctx context.Context, id string) (*document.Document, error) {
	d, err := s.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	in := document.Input{
		Kind:        document.KindContract,
		Number:      DocumentNumber(d.Contract.ID),
		Date:        d.Contract.StartDate,
		CompanyName: s.companyName,
		Client:      *d.Client,
		CityName:    d.CityName,
		Plans:       d.Plans,
	}
	if d.Contract.QuoteID != nil {
		q, err := s.quoteTerms(ctx, *d.Contract.QuoteID)
		if err != nil {
			return nil, err
		}
		if q != nil {
			in.Considerations = q.Considerations
			in.EconomicProposal = q.EconomicProposal
		}
	}
	doc := document.Assemble(in)
	return &doc, nil
}

func (s *contractService) quoteTerms(ctx context.Context, quoteID string) (*domain.Quote, error) {
	var q *domain.Quote
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		q, err = repository.NewSQLiteQuoteRepo(tx).GetByID(ctx, quoteID)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return q, err
}
