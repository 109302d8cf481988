package repository

import (
	"context"
	"strings"
	"time"

	"parvarish/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParentRepository persists parent accounts.
type ParentRepository struct {
	db *gorm.DB
}

func NewParentRepository(db *gorm.DB) *ParentRepository {
	return &ParentRepository{db: db}
}

type parentModel struct {
	ID           string    `gorm:"column:id;primaryKey;size:36"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Phone        string    `gorm:"column:phone"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (parentModel) TableName() string { return "parents" }

func toDomainParent(m parentModel) *domain.Parent {
	return &domain.Parent{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toParentModel(p *domain.Parent) parentModel {
	return parentModel{
		ID:           p.ID,
		Name:         p.Name,
		Email:        normalizeEmail(p.Email),
		PasswordHash: p.PasswordHash,
		Phone:        p.Phone,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *ParentRepository) Create(ctx context.Context, p *domain.Parent) error {
	m := toParentModel(p)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	*p = *toDomainParent(m)
	return nil
}

func (r *ParentRepository) GetByEmail(ctx context.Context, email string) (*domain.Parent, error) {
	var m parentModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainParent(m), nil
}

func (r *ParentRepository) GetByID(ctx context.Context, id string) (*domain.Parent, error) {
	var m parentModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainParent(m), nil
}

func (r *ParentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&parentModel{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
