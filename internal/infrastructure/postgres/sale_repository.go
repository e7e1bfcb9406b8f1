package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta. sales.lead_id es UNIQUE: una segunda venta del mismo lead es ErrDuplicate.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, lead_id, stage, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, sale.ID, sale.LeadID, string(sale.Stage), sale.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrLeadNotFound
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByLeadID obtiene la venta de un lead.
func (r *SaleRepo) GetByLeadID(ctx context.Context, leadID string) (*entity.Sale, error) {
	query := `SELECT id, lead_id, stage, created_at FROM sales WHERE lead_id = $1`
	var (
		s     entity.Sale
		stage string
	)
	err := r.q.QueryRow(ctx, query, leadID).Scan(&s.ID, &s.LeadID, &stage, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by lead: %w", err)
	}
	s.Stage = entity.SaleStage(stage)
	return &s, nil
}
