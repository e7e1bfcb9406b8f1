// Package scoring contiene los adaptadores de ports.LeadScorer.
package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/leads-api/internal/application/ports"
	domainscoring "github.com/jhoicas/leads-api/internal/domain/scoring"
)

// Verificar en tiempo de compilación que HeuristicScorer implementa LeadScorer.
var _ ports.LeadScorer = (*HeuristicScorer)(nil)

// KindHeuristic identificador del scorer heurístico en SCORER_KIND.
const KindHeuristic = "heuristic"

// HeuristicScorer adaptador que delega en la heurística aditiva del dominio.
// Sin estado: seguro para uso concurrente.
type HeuristicScorer struct{}

// NewHeuristicScorer construye el adaptador.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Evaluate nunca devuelve error.
func (HeuristicScorer) Evaluate(_ context.Context, snapshot domainscoring.Snapshot) (domainscoring.Result, error) {
	return domainscoring.Evaluate(snapshot), nil
}

// New selecciona la implementación según SCORER_KIND. Vacío equivale a heuristic.
func New(kind string) (ports.LeadScorer, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindHeuristic:
		return NewHeuristicScorer(), nil
	default:
		return nil, fmt.Errorf("scorer desconocido: %q", kind)
	}
}
