package admin

import (
	"context"
	"errors"

	"parvarish/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrDaycareNotFound = errors.New("daycare not found")

// Service holds operator actions. There is no admin role in the session
// model, so these are reached from cmd/daycare_approve only.
type Service struct {
	daycares DaycareRepository
}

func NewService(daycares DaycareRepository) *Service {
	return &Service{daycares: daycares}
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Daycare, error) {
	return s.daycares.ListPending(ctx)
}

// SetApproval flips the listing gate of a daycare and returns the stored
// record.
func (s *Service) SetApproval(ctx context.Context, daycareID string, approved bool) (*domain.Daycare, error) {
	if _, err := uuid.Parse(daycareID); err != nil {
		return nil, ErrDaycareNotFound
	}

	if err := s.daycares.SetApproved(ctx, daycareID, approved); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDaycareNotFound
		}
		return nil, err
	}

	d, err := s.daycares.GetByID(ctx, daycareID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("daycare_id", d.ID).Bool("approved", approved).Msg("daycare approval changed")
	return d, nil
}
