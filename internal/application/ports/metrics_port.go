package ports

// LeadMetrics registra los eventos del ciclo de vida (contadores de negocio).
type LeadMetrics interface {
	StageChanged(from, to string)
	LeadEvaluated(recommendation string)
	PromotionFinished(outcome string)
}

// Resultados de una promoción a venta.
const (
	PromotionPromoted       = "promoted"
	PromotionNoDomain       = "rejected_domain"
	PromotionLowScore       = "rejected_score"
	PromotionInvalidStage   = "rejected_stage"
	PromotionNotFound       = "not_found"
	PromotionInfrastructure = "error"
)
