package booking

import (
	"context"

	"parvarish/internal/domain"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	ListByParent(ctx context.Context, parentID string) ([]domain.Booking, error)
	ListByDaycare(ctx context.Context, daycareID string) ([]domain.Booking, error)
	Populate(ctx context.Context, b *domain.Booking) error
}

// NotificationSender pushes booking events to the accounts involved.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking)
	NotifyBookingStatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus)
}

// Recorder is satisfied by *metrics.Metrics.
type Recorder interface {
	BookingCreated()
	BookingStatusChanged(status string)
}
