package leads

import (
	"context"

	"github.com/jhoicas/leads-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cada operación del ciclo de vida (carga, validación y guardado) corre bajo una sola transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		leadRepo repository.LeadRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

type nopMetrics struct{}

func (nopMetrics) StageChanged(string, string) {}
func (nopMetrics) LeadEvaluated(string)        {}
func (nopMetrics) PromotionFinished(string)    {}
