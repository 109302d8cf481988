package repository

import (
	"context"
	"strings"
	"time"

	"parvarish/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DaycareFilters struct {
	City  string
	State string
}

type DaycareRepository struct {
	db *gorm.DB
}

func NewDaycareRepository(db *gorm.DB) *DaycareRepository {
	return &DaycareRepository{db: db}
}

type daycareModel struct {
	ID             string    `gorm:"column:id;primaryKey;size:36"`
	Name           string    `gorm:"column:name;not null"`
	Email          string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash   string    `gorm:"column:password_hash;not null"`
	Phone          string    `gorm:"column:phone"`
	Address        string    `gorm:"column:address"`
	City           string    `gorm:"column:city;index"`
	State          string    `gorm:"column:state"`
	ZipCode        string    `gorm:"column:zip_code"`
	Capacity       int       `gorm:"column:capacity"`
	Description    string    `gorm:"column:description"`
	OperatingHours string    `gorm:"column:operating_hours"`
	AgeRange       string    `gorm:"column:age_range"`
	LicensingInfo  string    `gorm:"column:licensing_info"`
	IsApproved     bool      `gorm:"column:is_approved;not null;default:false;index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (daycareModel) TableName() string { return "daycares" }

func toDomainDaycare(m daycareModel) *domain.Daycare {
	return &domain.Daycare{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Phone:          m.Phone,
		Address:        m.Address,
		City:           m.City,
		State:          m.State,
		ZipCode:        m.ZipCode,
		Capacity:       m.Capacity,
		Description:    m.Description,
		OperatingHours: m.OperatingHours,
		AgeRange:       m.AgeRange,
		LicensingInfo:  m.LicensingInfo,
		IsApproved:     m.IsApproved,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDaycareModel(d *domain.Daycare) daycareModel {
	return daycareModel{
		ID:             d.ID,
		Name:           d.Name,
		Email:          normalizeEmail(d.Email),
		PasswordHash:   d.PasswordHash,
		Phone:          d.Phone,
		Address:        d.Address,
		City:           d.City,
		State:          d.State,
		ZipCode:        d.ZipCode,
		Capacity:       d.Capacity,
		Description:    d.Description,
		OperatingHours: d.OperatingHours,
		AgeRange:       d.AgeRange,
		LicensingInfo:  d.LicensingInfo,
		IsApproved:     d.IsApproved,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *DaycareRepository) Create(ctx context.Context, d *domain.Daycare) error {
	m := toDaycareModel(d)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	*d = *toDomainDaycare(m)
	return nil
}

func (r *DaycareRepository) GetByID(ctx context.Context, id string) (*domain.Daycare, error) {
	var m daycareModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDaycare(m), nil
}

func (r *DaycareRepository) GetByEmail(ctx context.Context, email string) (*domain.Daycare, error) {
	var m daycareModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDaycare(m), nil
}

func (r *DaycareRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&daycareModel{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// ListApproved returns the publicly visible daycares, newest first.
func (r *DaycareRepository) ListApproved(ctx context.Context, f DaycareFilters) ([]domain.Daycare, error) {
	return r.list(ctx, true, f)
}

// ListPending returns daycares still waiting for approval, newest first.
func (r *DaycareRepository) ListPending(ctx context.Context) ([]domain.Daycare, error) {
	return r.list(ctx, false, DaycareFilters{})
}

func (r *DaycareRepository) list(ctx context.Context, approved bool, f DaycareFilters) ([]domain.Daycare, error) {
	q := r.db.WithContext(ctx).
		Model(&daycareModel{}).
		Where("is_approved = ?", approved)

	if c := strings.TrimSpace(f.City); c != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(c))
	}
	if s := strings.TrimSpace(f.State); s != "" {
		q = q.Where("LOWER(state) = ?", strings.ToLower(s))
	}

	var rows []daycareModel
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Daycare, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainDaycare(m))
	}
	return out, nil
}

// SetApproved flips the public visibility gate of a daycare.
func (r *DaycareRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	tx := r.db.WithContext(ctx).
		Model(&daycareModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_approved": approved,
			"updated_at":  time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
