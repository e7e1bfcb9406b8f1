package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-api/internal/application/dto"
	"github.com/jhoicas/leads-api/internal/application/leads"
	"github.com/jhoicas/leads-api/pkg/logger"
)

// LeadHandler maneja las peticiones HTTP del ciclo de vida de leads.
type LeadHandler struct {
	uc  *leads.LeadUseCase
	log *logger.Logger
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *leads.LeadUseCase, log *logger.Logger) *LeadHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &LeadHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "Origen y dominio de negocio"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateLead(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar leads
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        stage   query  string  false  "Filtrar por etapa"
// @Param        limit   query  int     false  "Límite (máx. 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.LeadListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	var in dto.LeadListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query parameters"})
	}
	out, err := h.uc.ListLeads(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener lead por ID
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.LeadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetLead(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ChangeStage godoc
// @Summary      Cambiar etapa del lead
// @Description  Valida la transición contra la máquina de estados (new → contacted → qualified → transferred; lost desde cualquier etapa no terminal).
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lead"
// @Param        body  body  dto.StageUpdateRequest  true  "Nueva etapa"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/stage [patch]
func (h *LeadHandler) ChangeStage(c *fiber.Ctx) error {
	var in dto.StageUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChangeStage(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RecordActivity godoc
// @Summary      Registrar actividad del lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del lead"
// @Param        body  body  dto.RecordActivityRequest  true  "Incremento (> 0)"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/activity [post]
func (h *LeadHandler) RecordActivity(c *fiber.Ctx) error {
	var in dto.RecordActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordActivity(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Analyze godoc
// @Summary      Evaluar lead
// @Description  Calcula score, recomendación y explicación. Solo el score se guarda en el lead.
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.ScoringResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/analyze [post]
func (h *LeadHandler) Analyze(c *fiber.Ctx) error {
	out, err := h.uc.Evaluate(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir lead a ventas
// @Description  Requiere dominio de negocio, score ≥ 0.6 y etapa qualified. Crea la venta en etapa new.
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/transfer [post]
func (h *LeadHandler) Transfer(c *fiber.Ctx) error {
	sale, err := h.uc.PromoteToSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.TransferResponse{
		Message:   leads.TransferMessage,
		SaleID:    sale.ID,
		SaleStage: sale.Stage,
	})
}

// GetSale godoc
// @Summary      Obtener la venta de un lead
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/sale [get]
func (h *LeadHandler) GetSale(c *fiber.Ctx) error {
	out, err := h.uc.GetSaleByLead(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
