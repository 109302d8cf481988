package notification

import (
	"context"
	"sync"
	"time"

	"parvarish/internal/domain"

	"github.com/rs/zerolog/log"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

type Event struct {
	Type           string               `json:"type"`
	BookingID      string               `json:"bookingId"`
	Status         domain.BookingStatus `json:"status"`
	PreviousStatus domain.BookingStatus `json:"previousStatus,omitempty"`
	Booking        *domain.Booking      `json:"booking"`
	At             time.Time            `json:"at"`
}

// sender is satisfied by *Hub.
type sender interface {
	SendTo(key string, message any) int
}

// Notifier turns booking changes into hub events. Delivery is best effort
// and runs off the request goroutine, so a stalled stream never delays a
// booking write. Accounts without an open stream simply miss the event.
type Notifier struct {
	hub sender
	now func() time.Time
	wg  sync.WaitGroup
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

// Wait blocks until every dispatched event has been written or dropped.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) NotifyBookingCreated(_ context.Context, b *domain.Booking) {
	snapshot := *b
	ev := Event{
		Type:      EventBookingCreated,
		BookingID: b.ID,
		Status:    b.Status,
		Booking:   &snapshot,
		At:        n.now().UTC(),
	}
	n.dispatch(ev, AccountKey(domain.RoleDaycare, b.DaycareID))
}

func (n *Notifier) NotifyBookingStatusChanged(_ context.Context, b *domain.Booking, from domain.BookingStatus) {
	snapshot := *b
	ev := Event{
		Type:           EventBookingStatusChanged,
		BookingID:      b.ID,
		Status:         b.Status,
		PreviousStatus: from,
		Booking:        &snapshot,
		At:             n.now().UTC(),
	}
	n.dispatch(ev,
		AccountKey(domain.RoleParent, b.ParentID),
		AccountKey(domain.RoleDaycare, b.DaycareID),
	)
}

func (n *Notifier) dispatch(ev Event, keys ...string) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.send(ev, keys...)
	}()
}

func (n *Notifier) send(ev Event, keys ...string) {
	for _, key := range keys {
		delivered := n.hub.SendTo(key, ev)
		log.Debug().
			Str("event", ev.Type).
			Str("booking_id", ev.BookingID).
			Str("account", key).
			Int("delivered", delivered).
			Msg("booking event")
	}
}
