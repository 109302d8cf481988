package repository

import (
	"context"
	"time"

	"parvarish/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type childColumns struct {
	Name         string `gorm:"column:name;not null"`
	Age          int    `gorm:"column:age"`
	SpecialNeeds string `gorm:"column:special_needs"`
	Allergies    string `gorm:"column:allergies"`
}

type bookingModel struct {
	ID            string       `gorm:"column:id;primaryKey;size:36"`
	ParentID      string       `gorm:"column:parent_id;size:36;not null;index"`
	DaycareID     string       `gorm:"column:daycare_id;size:36;not null;index"`
	Child         childColumns `gorm:"embedded;embeddedPrefix:child_"`
	StartDate     time.Time    `gorm:"column:start_date"`
	EndDate       time.Time    `gorm:"column:end_date"`
	Schedule      string       `gorm:"column:schedule"`
	Status        string       `gorm:"column:status;not null;default:pending"`
	PaymentStatus string       `gorm:"column:payment_status;not null;default:pending"`
	Notes         string       `gorm:"column:notes;type:text"`
	CreatedAt     time.Time    `gorm:"column:created_at;index"`
	UpdatedAt     time.Time    `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:        m.ID,
		ParentID:  m.ParentID,
		DaycareID: m.DaycareID,
		Child: domain.Child{
			Name:         m.Child.Name,
			Age:          m.Child.Age,
			SpecialNeeds: m.Child.SpecialNeeds,
			Allergies:    m.Child.Allergies,
		},
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		Schedule:      m.Schedule,
		Status:        domain.BookingStatus(m.Status),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:        b.ID,
		ParentID:  b.ParentID,
		DaycareID: b.DaycareID,
		Child: childColumns{
			Name:         b.Child.Name,
			Age:          b.Child.Age,
			SpecialNeeds: b.Child.SpecialNeeds,
			Allergies:    b.Child.Allergies,
		},
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Schedule:      b.Schedule,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// UpdateStatus replaces the stored status. There is no version check:
// concurrent updates resolve as last write wins.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByParent returns the parent's bookings, newest first, with the
// daycare summary populated.
func (r *BookingRepository) ListByParent(ctx context.Context, parentID string) ([]domain.Booking, error) {
	out, err := r.listWhere(ctx, "parent_id = ?", parentID)
	if err != nil {
		return nil, err
	}
	if err := r.populateDaycares(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDaycare returns the daycare's bookings, newest first, with the
// parent summary populated.
func (r *BookingRepository) ListByDaycare(ctx context.Context, daycareID string) ([]domain.Booking, error) {
	out, err := r.listWhere(ctx, "daycare_id = ?", daycareID)
	if err != nil {
		return nil, err
	}
	if err := r.populateParents(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Populate fills both the parent and the daycare summary of b. A reference
// that does not resolve leaves the summary nil.
func (r *BookingRepository) Populate(ctx context.Context, b *domain.Booking) error {
	one := []domain.Booking{*b}
	if err := r.populateParents(ctx, one); err != nil {
		return err
	}
	if err := r.populateDaycares(ctx, one); err != nil {
		return err
	}
	*b = one[0]
	return nil
}

func (r *BookingRepository) listWhere(ctx context.Context, cond string, arg any) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) populateParents(ctx context.Context, bookings []domain.Booking) error {
	ids := uniqueIDs(bookings, func(b domain.Booking) string { return b.ParentID })
	if len(ids) == 0 {
		return nil
	}

	var rows []parentModel
	if err := r.db.WithContext(ctx).
		Select("id", "name", "email", "phone").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return err
	}

	byID := make(map[string]*domain.ParentSummary, len(rows))
	for _, m := range rows {
		byID[m.ID] = toDomainParent(m).Summary()
	}
	for i := range bookings {
		bookings[i].Parent = byID[bookings[i].ParentID]
	}
	return nil
}

func (r *BookingRepository) populateDaycares(ctx context.Context, bookings []domain.Booking) error {
	ids := uniqueIDs(bookings, func(b domain.Booking) string { return b.DaycareID })
	if len(ids) == 0 {
		return nil
	}

	var rows []daycareModel
	if err := r.db.WithContext(ctx).
		Select("id", "name", "address", "city", "state", "operating_hours").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return err
	}

	byID := make(map[string]*domain.DaycareSummary, len(rows))
	for _, m := range rows {
		byID[m.ID] = toDomainDaycare(m).Summary()
	}
	for i := range bookings {
		bookings[i].Daycare = byID[bookings[i].DaycareID]
	}
	return nil
}

func uniqueIDs(bookings []domain.Booking, key func(domain.Booking) string) []string {
	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		id := key(b)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
