package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/google/uuid"
)

type clientService struct {
	clients repository.ClientRepo
	cities  repository.CityRepo
	uow     db.UnitOfWork
}

func NewClientService(clients repository.ClientRepo, cities repository.CityRepo, uow db.UnitOfWork) ClientService {
	return &clientService{clients: clients, cities: cities, uow: uow}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Status == "" {
		c.Status = domain.ClientProspect
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.checkCity(ctx, c.CityID); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.OnboardingDate.IsZero() {
		c.OnboardingDate = time.Now().UTC()
	}
	return s.clients.Create(ctx, c)
}

func (s *clientService) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, status domain.ClientStatus) ([]*domain.Client, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: client status %q", domain.ErrValidation, status)
	}
	return s.clients.List(ctx, status)
}

// Update saves scalar changes. A status change must follow the client
// transition table.
func (s *clientService) Update(ctx context.Context, c *domain.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.checkCity(ctx, c.CityID); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLiteClientRepo(tx)
		current, err := txClients.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		if c.Status != current.Status && !current.CanTransitionTo(c.Status) {
			return fmt.Errorf("%w: client %s -> %s", domain.ErrInvalidTransition, current.Status, c.Status)
		}
		return txClients.Update(ctx, c)
	})
}

func (s *clientService) Activate(ctx context.Context, id string) (*domain.Client, error) {
	var out *domain.Client
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLiteClientRepo(tx)
		c, err := txClients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := c.Activate(time.Now().UTC()); err != nil {
			return err
		}
		out = c
		return txClients.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	return s.clients.Delete(ctx, id)
}

func (s *clientService) checkCity(ctx context.Context, cityID string) error {
	if cityID == "" {
		return nil
	}
	if _, err := s.cities.GetByID(ctx, cityID); err != nil {
		return fmt.Errorf("loading city: %w", err)
	}
	return nil
}
