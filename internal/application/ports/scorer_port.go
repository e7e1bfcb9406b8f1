package ports

import (
	"context"

	"github.com/jhoicas/leads-api/internal/domain/scoring"
)

// LeadScorer define el puerto de salida para la evaluación de leads.
// La heurística actual y un futuro modelo entrenado implementan la misma interfaz;
// el controlador del ciclo de vida solo conoce este contrato.
type LeadScorer interface {
	// Evaluate calcula score, recomendación y explicación a partir del snapshot.
	// La heurística nunca devuelve error; un adaptador remoto sí podría.
	Evaluate(ctx context.Context, snapshot scoring.Snapshot) (scoring.Result, error)
}
