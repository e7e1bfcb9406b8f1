package entity

import "time"

// SaleStage etapa de la venta. Todavía no tiene reglas de transición.
type SaleStage string

const (
	SaleStageNew       SaleStage = "new"
	SaleStageKYC       SaleStage = "kyc"
	SaleStageAgreement SaleStage = "agreement"
	SaleStagePaid      SaleStage = "paid"
	SaleStageLost      SaleStage = "lost"
)

// Sale representa la venta creada al promover un lead. Una por lead.
type Sale struct {
	ID        string
	LeadID    string
	Stage     SaleStage
	CreatedAt time.Time
}
