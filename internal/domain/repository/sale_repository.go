package repository

import (
	"context"

	"github.com/jhoicas/leads-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	// Create devuelve domain.ErrDuplicate si el lead ya tiene venta.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByLeadID devuelve (nil, nil) si el lead no tiene venta.
	GetByLeadID(ctx context.Context, leadID string) (*entity.Sale, error)
}
