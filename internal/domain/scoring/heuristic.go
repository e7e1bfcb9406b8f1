// Package scoring calcula la probabilidad de cierre de un lead con una heurística aditiva.
// Es una función pura: mismas entradas, mismo resultado, sin estado.
package scoring

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransferThreshold umbral compartido por la recomendación y por la promoción a venta.
const TransferThreshold = 0.6

// Recomendaciones posibles.
const (
	RecommendationTransfer = "transfer_to_sales"
	RecommendationNurture  = "nurture_lead"
)

// ReasonSeparator separa las cláusulas de la explicación.
const ReasonSeparator = " | "

// Snapshot rasgos mínimos del lead que recibe el scorer.
// Valores desconocidos o vacíos caen en la rama de aporte cero.
type Snapshot struct {
	Source         string
	Stage          string
	BusinessDomain string
	ActivityCount  int
}

// Result salida del scorer. Solo Score se persiste en el lead.
type Result struct {
	Score          float64 `json:"score"`
	Recommendation string  `json:"recommendation"`
	Reason         string  `json:"reason"`
}

var (
	sourceWeights = map[string]decimal.Decimal{
		"partner": decimal.New(30, -2),
		"manual":  decimal.New(20, -2),
		"scanner": decimal.New(10, -2),
	}
	sourceReasons = map[string]string{
		"partner": "Partner leads have higher conversion rates.",
		"manual":  "Manually added leads show active interest.",
		"scanner": "Scanner leads require more warming up.",
	}

	domainWeight   = decimal.New(30, -2)
	highActivity   = decimal.New(40, -2)
	mediumActivity = decimal.New(20, -2)

	threshold = decimal.NewFromFloat(TransferThreshold)
)

// Evaluate aplica la heurística: origen, dominio y actividad, en ese orden.
// La suma se acota a [0, 1] y se redondea a 2 decimales solo en la salida.
func Evaluate(s Snapshot) Result {
	score := decimal.Zero
	var reasons []string

	if w, ok := sourceWeights[s.Source]; ok {
		score = score.Add(w)
		reasons = append(reasons, sourceReasons[s.Source])
	}

	if strings.TrimSpace(s.BusinessDomain) != "" {
		score = score.Add(domainWeight)
		reasons = append(reasons, "Clear business domain identified.")
	} else {
		reasons = append(reasons, "Missing business domain lowers probability.")
	}

	switch {
	case s.ActivityCount > 10:
		score = score.Add(highActivity)
		reasons = append(reasons, "High engagement rate (>10 messages).")
	case s.ActivityCount > 3:
		score = score.Add(mediumActivity)
		reasons = append(reasons, "Moderate engagement.")
	default:
		reasons = append(reasons, "Low engagement.")
	}

	final := decimal.Min(decimal.Max(score, decimal.Zero), decimal.NewFromInt(1)).Round(2)

	recommendation := RecommendationNurture
	if final.GreaterThanOrEqual(threshold) {
		recommendation = RecommendationTransfer
	}

	return Result{
		Score:          final.InexactFloat64(),
		Recommendation: recommendation,
		Reason:         strings.Join(reasons, ReasonSeparator),
	}
}

// MeetsThreshold informa si un score ya persistido alcanza el umbral de transferencia.
func MeetsThreshold(score float64) bool {
	return decimal.NewFromFloat(score).GreaterThanOrEqual(threshold)
}
