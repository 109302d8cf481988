package auth

import (
	"context"

	"parvarish/internal/domain"
)

// ParentRepository lists only the methods the auth service uses.
type ParentRepository interface {
	Create(ctx context.Context, p *domain.Parent) error
	GetByEmail(ctx context.Context, email string) (*domain.Parent, error)
	GetByID(ctx context.Context, id string) (*domain.Parent, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type DaycareRepository interface {
	Create(ctx context.Context, d *domain.Daycare) error
	GetByEmail(ctx context.Context, email string) (*domain.Daycare, error)
	GetByID(ctx context.Context, id string) (*domain.Daycare, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(userID, email, role string) (string, error)
}

// RegistrationRecorder is satisfied by *metrics.Metrics.
type RegistrationRecorder interface {
	RegistrationCompleted(role string)
}
