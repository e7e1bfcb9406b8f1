package scoring_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/leads-api/internal/domain/scoring"
)

func TestEvaluate_AporteDelOrigen(t *testing.T) {
	cases := []struct {
		source string
		want   float64
	}{
		{"partner", 0.30},
		{"manual", 0.20},
		{"scanner", 0.10},
		{"unknown", 0.00},
		{"", 0.00},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			got := scoring.Evaluate(scoring.Snapshot{Source: tc.source})
			assert.InDelta(t, tc.want, got.Score, 1e-9)
		})
	}
}

func TestEvaluate_DominioYActividad(t *testing.T) {
	cases := []struct {
		name     string
		snapshot scoring.Snapshot
		want     float64
	}{
		{"solo dominio", scoring.Snapshot{BusinessDomain: "first"}, 0.30},
		{"actividad 3 es baja", scoring.Snapshot{ActivityCount: 3}, 0.00},
		{"actividad 4 es moderada", scoring.Snapshot{ActivityCount: 4}, 0.20},
		{"actividad 10 es moderada", scoring.Snapshot{ActivityCount: 10}, 0.20},
		{"actividad 11 es alta", scoring.Snapshot{ActivityCount: 11}, 0.40},
		{"actividad negativa", scoring.Snapshot{ActivityCount: -5}, 0.00},
		{"dominio en blanco", scoring.Snapshot{BusinessDomain: "   "}, 0.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scoring.Evaluate(tc.snapshot)
			assert.InDelta(t, tc.want, got.Score, 1e-9)
		})
	}
}

func TestEvaluate_MaximoAcotadoAUno(t *testing.T) {
	got := scoring.Evaluate(scoring.Snapshot{Source: "partner", BusinessDomain: "first", ActivityCount: 50})
	assert.Equal(t, 1.0, got.Score)
	assert.Equal(t, scoring.RecommendationTransfer, got.Recommendation)
}

func TestEvaluate_RangoYRecomendacion(t *testing.T) {
	sources := []string{"partner", "manual", "scanner", "other", ""}
	domains := []string{"", "first", "second"}
	activities := []int{-1, 0, 2, 3, 4, 7, 10, 11, 1000}
	for _, s := range sources {
		for _, d := range domains {
			for _, a := range activities {
				got := scoring.Evaluate(scoring.Snapshot{Source: s, BusinessDomain: d, ActivityCount: a})
				assert.GreaterOrEqual(t, got.Score, 0.0)
				assert.LessOrEqual(t, got.Score, 1.0)
				if got.Score >= scoring.TransferThreshold {
					assert.Equal(t, scoring.RecommendationTransfer, got.Recommendation, "%s/%s/%d", s, d, a)
				} else {
					assert.Equal(t, scoring.RecommendationNurture, got.Recommendation, "%s/%s/%d", s, d, a)
				}
			}
		}
	}
}

func TestEvaluate_SumasEnElUmbral(t *testing.T) {
	// scanner + dominio + moderada = 0.1 + 0.3 + 0.2; en float64 da 0.6000000000000001.
	got := scoring.Evaluate(scoring.Snapshot{Source: "scanner", BusinessDomain: "first", ActivityCount: 5})
	assert.Equal(t, 0.6, got.Score)
	assert.Equal(t, scoring.RecommendationTransfer, got.Recommendation)

	got = scoring.Evaluate(scoring.Snapshot{Source: "manual", ActivityCount: 4})
	assert.Equal(t, 0.4, got.Score)
	assert.Equal(t, scoring.RecommendationNurture, got.Recommendation)
}

func TestEvaluate_Escenario_PartnerConDominio(t *testing.T) {
	got := scoring.Evaluate(scoring.Snapshot{Source: "partner", Stage: "new", BusinessDomain: "first"})
	assert.Equal(t, 0.6, got.Score)
	assert.Equal(t, scoring.RecommendationTransfer, got.Recommendation)
}

func TestEvaluate_Escenario_ScannerSinDominio(t *testing.T) {
	got := scoring.Evaluate(scoring.Snapshot{Source: "scanner", ActivityCount: 2})
	assert.Equal(t, 0.1, got.Score)
	assert.Equal(t, scoring.RecommendationNurture, got.Recommendation)
}

func TestEvaluate_ExplicacionEnOrden(t *testing.T) {
	got := scoring.Evaluate(scoring.Snapshot{Source: "partner", BusinessDomain: "second", ActivityCount: 12})
	assert.Equal(t,
		"Partner leads have higher conversion rates. | Clear business domain identified. | High engagement rate (>10 messages).",
		got.Reason)

	got = scoring.Evaluate(scoring.Snapshot{ActivityCount: 0})
	assert.Equal(t, "Missing business domain lowers probability. | Low engagement.", got.Reason)
	assert.Len(t, strings.Split(got.Reason, scoring.ReasonSeparator), 2)
}

func TestEvaluate_Determinista(t *testing.T) {
	s := scoring.Snapshot{Source: "manual", BusinessDomain: "third", ActivityCount: 6}
	assert.Equal(t, scoring.Evaluate(s), scoring.Evaluate(s))
}

func TestMeetsThreshold(t *testing.T) {
	assert.True(t, scoring.MeetsThreshold(0.6))
	assert.True(t, scoring.MeetsThreshold(0.75))
	assert.False(t, scoring.MeetsThreshold(0.59))
	assert.False(t, scoring.MeetsThreshold(0))
}
