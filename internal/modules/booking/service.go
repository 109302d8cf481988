package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"parvarish/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings BookingRepository
	notifs   NotificationSender
	recorder Recorder
}

func NewService(bookings BookingRepository, notifs NotificationSender, recorder Recorder) *Service {
	return &Service{
		bookings: bookings,
		notifs:   notifs,
		recorder: recorder,
	}
}

// Create stores a pending booking for the calling parent. The daycare
// reference is only checked for syntax; a reference to a missing daycare
// is stored as is and comes back without a daycare summary.
func (s *Service) Create(ctx context.Context, actor Actor, req CreateBookingRequest) (*domain.Booking, error) {
	if actor.Role != domain.RoleParent {
		return nil, ErrForbidden
	}

	daycareID := strings.TrimSpace(req.daycareID())
	if _, err := uuid.Parse(daycareID); err != nil {
		return nil, fmt.Errorf("%w: invalid daycare id", ErrValidation)
	}

	child := req.child()
	if strings.TrimSpace(child.Name) == "" {
		return nil, fmt.Errorf("%w: child name is required", ErrValidation)
	}
	if child.Age == nil {
		return nil, fmt.Errorf("%w: child age is required", ErrValidation)
	}
	if *child.Age < 0 {
		return nil, fmt.Errorf("%w: child age must not be negative", ErrValidation)
	}

	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Schedule) == "" {
		return nil, fmt.Errorf("%w: schedule is required", ErrValidation)
	}

	b := &domain.Booking{
		ParentID:  actor.UserID,
		DaycareID: daycareID,
		Child: domain.Child{
			Name:         strings.TrimSpace(child.Name),
			Age:          *child.Age,
			SpecialNeeds: child.SpecialNeeds,
			Allergies:    child.Allergies,
		},
		StartDate:     start,
		EndDate:       end,
		Schedule:      req.Schedule,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		Notes:         req.Notes,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	// the write already happened; a failed lookup only costs the summaries
	if err := s.bookings.Populate(ctx, b); err != nil {
		log.Warn().Err(err).Str("booking_id", b.ID).Msg("populate booking failed")
	}

	if s.recorder != nil {
		s.recorder.BookingCreated()
	}
	if s.notifs != nil {
		s.notifs.NotifyBookingCreated(ctx, b)
	}

	log.Info().
		Str("booking_id", b.ID).
		Str("parent_id", b.ParentID).
		Str("daycare_id", b.DaycareID).
		Msg("booking created")
	return b, nil
}

// List returns the bookings the caller is a party to, newest first.
func (s *Service) List(ctx context.Context, actor Actor) ([]domain.Booking, error) {
	if actor.Role == domain.RoleDaycare {
		return s.bookings.ListByDaycare(ctx, actor.UserID)
	}
	return s.bookings.ListByParent(ctx, actor.UserID)
}

// Get hides bookings the caller is not a party to behind ErrNotFound.
func (s *Service) Get(ctx context.Context, actor Actor, id string) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isParty(actor, b) {
		return nil, ErrNotFound
	}
	if err := s.bookings.Populate(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateStatus applies a status change requested by the booking's daycare,
// or a cancellation requested by the booking's parent.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, id string, status string) (*domain.Booking, error) {
	next := domain.BookingStatus(status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleDaycare:
		if b.DaycareID != actor.UserID {
			return nil, ErrForbidden
		}
	case domain.RoleParent:
		if b.ParentID != actor.UserID || next != domain.BookingCancelled {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	prev := b.Status
	if !domain.CanTransition(prev, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, prev, next)
	}

	if err := s.bookings.UpdateStatus(ctx, b.ID, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated, err := s.load(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Populate(ctx, updated); err != nil {
		log.Warn().Err(err).Str("booking_id", updated.ID).Msg("populate booking failed")
	}

	if s.recorder != nil {
		s.recorder.BookingStatusChanged(string(next))
	}
	if s.notifs != nil {
		s.notifs.NotifyBookingStatusChanged(ctx, updated, prev)
	}

	log.Info().
		Str("booking_id", updated.ID).
		Str("from", string(prev)).
		Str("to", string(next)).
		Str("actor_role", string(actor.Role)).
		Msg("booking status updated")
	return updated, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func isParty(actor Actor, b *domain.Booking) bool {
	switch actor.Role {
	case domain.RoleDaycare:
		return b.DaycareID == actor.UserID
	case domain.RoleParent:
		return b.ParentID == actor.UserID
	}
	return false
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD or RFC 3339", ErrValidation, field)
}
