package dto

import "time"

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Stage     string    `json:"stage"`
	CreatedAt time.Time `json:"created_at"`
}

// TransferResponse cuerpo de la respuesta de POST /api/leads/:id/transfer.
type TransferResponse struct {
	Message   string `json:"message"`
	SaleID    string `json:"sale_id"`
	SaleStage string `json:"sale_stage"`
}
