// Package service sits between the HTTP layer and storage: it enforces
// validation and ownership before any write, and keeps the catalog cache
// coherent after successful mutations.
package service

import (
	"context"
	"log"

	"github.com/plantkeeper/plantkeeper-backend/internal/plants/domain"
)

// Store is the persistence surface the service needs; *repository.Repo
// satisfies it.
type Store interface {
	Create(ctx context.Context, p *domain.Plant) (string, error)
	List(ctx context.Context) ([]domain.Plant, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Plant, error)
	Get(ctx context.Context, id string) (*domain.Plant, error)
	Update(ctx context.Context, id string, p *domain.Plant) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Cache is the catalog cache surface; *cache.CatalogCache satisfies it. A
// nil Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context) ([]domain.Plant, bool, error)
	Set(ctx context.Context, plants []domain.Plant) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	store Store
	cache Cache
}

func New(store Store, cache Cache) *Service {
	return &Service{store: store, cache: cache}
}

// List returns the full catalog, served from cache when possible. Cache
// errors are logged and bypassed, never returned.
func (s *Service) List(ctx context.Context) ([]domain.Plant, error) {
	if s.cache != nil {
		plants, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("catalog cache read: %v", err)
		} else if ok {
			return plants, nil
		}
	}

	plants, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, plants); err != nil {
			log.Printf("catalog cache write: %v", err)
		}
	}
	return plants, nil
}

// ListByOwner returns the caller's plants. An empty owner email scopes to
// nothing and returns an empty list rather than an error.
func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Plant, error) {
	if ownerEmail == "" {
		return []domain.Plant{}, nil
	}
	return s.store.ListByOwner(ctx, ownerEmail)
}

// Get returns one plant by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Plant, error) {
	return s.store.Get(ctx, id)
}

// Create validates the plant, stamps the verified owner and persists it.
// Validation failures reject the record before any storage write.
func (s *Service) Create(ctx context.Context, p domain.Plant, ownerEmail, ownerName string) (string, error) {
	p.OwnerEmail = ownerEmail
	p.OwnerName = ownerName

	if err := p.Validate(); err != nil {
		return "", err
	}

	id, err := s.store.Create(ctx, &p)
	if err != nil {
		return "", err
	}

	s.invalidate(ctx)
	return id, nil
}

// Update validates the new fields and rewrites the record if the caller
// owns it. Returns the number of modified rows.
func (s *Service) Update(ctx context.Context, id string, p domain.Plant, callerEmail string) (int64, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing.OwnerEmail != callerEmail {
		return 0, domain.ErrForbidden
	}

	p.OwnerEmail = existing.OwnerEmail
	p.OwnerName = existing.OwnerName
	if err := p.Validate(); err != nil {
		return 0, err
	}

	n, err := s.store.Update(ctx, id, &p)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx)
	return n, nil
}

// Delete removes the record if the caller owns it. Returns the number of
// deleted rows.
func (s *Service) Delete(ctx context.Context, id string, callerEmail string) (int64, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing.OwnerEmail != callerEmail {
		return 0, domain.ErrForbidden
	}

	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx)
	return n, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("catalog cache invalidate: %v", err)
	}
}
