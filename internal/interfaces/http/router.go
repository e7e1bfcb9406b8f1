package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-api/internal/application/leads"
	"github.com/jhoicas/leads-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LeadUC    *leads.LeadUseCase
	JWTSecret string // vacío = API sin autenticación
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// operadores: cualquier rol; la transferencia a ventas queda para admin y sales
	operators := authGuard(deps.JWTSecret, RoleAdmin, RoleMarketing, RoleSales)
	closers := authGuard(deps.JWTSecret, RoleAdmin, RoleSales)

	h := NewLeadHandler(deps.LeadUC, deps.Log)
	leadsGroup := api.Group("/leads")
	leadsGroup.Post("/", withGuard(operators, h.Create)...)
	leadsGroup.Get("/", withGuard(operators, h.List)...)
	leadsGroup.Get("/:id", withGuard(operators, h.GetByID)...)
	leadsGroup.Patch("/:id/stage", withGuard(operators, h.ChangeStage)...)
	leadsGroup.Post("/:id/activity", withGuard(operators, h.RecordActivity)...)
	leadsGroup.Post("/:id/analyze", withGuard(operators, h.Analyze)...)
	leadsGroup.Post("/:id/transfer", withGuard(closers, h.Transfer)...)
	leadsGroup.Get("/:id/sale", withGuard(operators, h.GetSale)...)
}

func withGuard(guard []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guard)+1)
	out = append(out, guard...)
	return append(out, h)
}
