package repository

import (
	"context"

	"github.com/jhoicas/leads-api/internal/domain/entity"
)

// LeadFilter criterios de listado de leads. Count ignora Limit y Offset.
type LeadFilter struct {
	Stage  *entity.LeadStage
	Limit  int
	Offset int
}

// LeadRepository define el puerto de persistencia para Lead (DIP).
// GetByID y GetByIDForUpdate devuelven (nil, nil) si el lead no existe.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	List(ctx context.Context, filter LeadFilter) ([]*entity.Lead, error)
	Count(ctx context.Context, filter LeadFilter) (int, error)
}
