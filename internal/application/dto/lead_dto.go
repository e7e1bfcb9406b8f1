package dto

import "time"

// CreateLeadRequest entrada para crear un lead.
type CreateLeadRequest struct {
	Source         string  `json:"source"`
	BusinessDomain *string `json:"business_domain"`
}

// StageUpdateRequest entrada para cambiar la etapa de un lead.
type StageUpdateRequest struct {
	NewStage string `json:"new_stage"`
}

// RecordActivityRequest incrementa el contador de actividad.
type RecordActivityRequest struct {
	Delta int `json:"delta"`
}

// LeadListRequest filtros de listado.
type LeadListRequest struct {
	Stage string `query:"stage"`
	PageRequest
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID             string    `json:"id"`
	Source         string    `json:"source"`
	Stage          string    `json:"stage"`
	BusinessDomain *string   `json:"business_domain"`
	ActivityCount  int       `json:"activity_count"`
	AIScore        *float64  `json:"ai_score"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LeadListResponse lista paginada de leads.
type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ScoringResponse resultado de la evaluación (solo el score queda persistido).
type ScoringResponse struct {
	Score          float64 `json:"score"`
	Recommendation string  `json:"recommendation"`
	Reason         string  `json:"reason"`
}
