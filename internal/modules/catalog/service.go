package catalog

import (
	"context"
	"errors"

	"parvarish/internal/domain"
	"parvarish/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("daycare not found")

type DaycareReader interface {
	ListApproved(ctx context.Context, f repository.DaycareFilters) ([]domain.Daycare, error)
	GetByID(ctx context.Context, id string) (*domain.Daycare, error)
}

type Service struct {
	daycares DaycareReader
}

func NewService(daycares DaycareReader) *Service {
	return &Service{daycares: daycares}
}

// List returns approved daycares only, newest first.
func (s *Service) List(ctx context.Context, f repository.DaycareFilters) ([]domain.Daycare, error) {
	return s.daycares.ListApproved(ctx, f)
}

// GetByID does not require approval. Malformed ids are reported as not found.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Daycare, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	d, err := s.daycares.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}
