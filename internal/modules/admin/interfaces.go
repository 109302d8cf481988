package admin

import (
	"context"

	"parvarish/internal/domain"
)

type DaycareRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Daycare, error)
	ListPending(ctx context.Context) ([]domain.Daycare, error)
	SetApproved(ctx context.Context, id string, approved bool) error
}
