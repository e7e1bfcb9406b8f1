package leads

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/leads-api/internal/application/dto"
	"github.com/jhoicas/leads-api/internal/application/ports"
	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/domain/lifecycle"
	"github.com/jhoicas/leads-api/internal/domain/repository"
	"github.com/jhoicas/leads-api/internal/domain/scoring"
	"github.com/jhoicas/leads-api/pkg/logger"
)

// Motivos de rechazo de la promoción a venta.
const (
	reasonMissingDomain = "must have a business domain to be transferred"
	reasonLowScore      = "AI score must be evaluated and ≥ 0.6"
)

// maxActivityCount límite de activity_count (columna INTEGER).
const maxActivityCount = math.MaxInt32

// TransferMessage mensaje devuelto al promover un lead con éxito.
const TransferMessage = "Lead transferred to sales successfully"

// LeadUseCase controlador del ciclo de vida del lead: transiciones, evaluación y promoción a venta.
type LeadUseCase struct {
	txRunner TxRunner
	leadRepo repository.LeadRepository
	saleRepo repository.SaleRepository
	scorer   ports.LeadScorer
	metrics  ports.LeadMetrics
	log      *logger.Logger
}

// NewLeadUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewLeadUseCase(
	txRunner TxRunner,
	leadRepo repository.LeadRepository,
	saleRepo repository.SaleRepository,
	scorer ports.LeadScorer,
	metrics ports.LeadMetrics,
	log *logger.Logger,
) *LeadUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &LeadUseCase{
		txRunner: txRunner,
		leadRepo: leadRepo,
		saleRepo: saleRepo,
		scorer:   scorer,
		metrics:  metrics,
		log:      log,
	}
}

// CreateLead crea un lead en etapa new, sin score y con actividad 0.
func (uc *LeadUseCase) CreateLead(ctx context.Context, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	source, err := parseSource(in.Source)
	if err != nil {
		return nil, err
	}
	bd, err := parseBusinessDomain(in.BusinessDomain)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	lead := &entity.Lead{
		ID:             uuid.New().String(),
		Source:         source,
		Stage:          lifecycle.InitialStage,
		BusinessDomain: bd,
		ActivityCount:  0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	uc.log.Info().Str("lead_id", lead.ID).Str("source", string(source)).Msg("lead creado")
	return toLeadResponse(lead), nil
}

// GetLead obtiene un lead por ID.
func (uc *LeadUseCase) GetLead(ctx context.Context, id string) (*dto.LeadResponse, error) {
	lead, err := uc.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrLeadNotFound
	}
	return toLeadResponse(lead), nil
}

// ListLeads lista leads, opcionalmente filtrados por etapa, con paginación.
func (uc *LeadUseCase) ListLeads(ctx context.Context, in dto.LeadListRequest) (*dto.LeadListResponse, error) {
	in.Normalize()
	filter := repository.LeadFilter{Limit: in.Limit, Offset: in.Offset}
	if in.Stage != "" {
		st, err := parseStage(in.Stage)
		if err != nil {
			return nil, err
		}
		filter.Stage = &st
	}
	list, err := uc.leadRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.leadRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLeadResponse(l))
	}
	return &dto.LeadListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ChangeStage valida la transición contra la tabla y persiste la nueva etapa.
func (uc *LeadUseCase) ChangeStage(ctx context.Context, id string, in dto.StageUpdateRequest) (*dto.LeadResponse, error) {
	target, err := parseStage(in.NewStage)
	if err != nil {
		return nil, err
	}
	var updated *entity.Lead
	var from entity.LeadStage
	err = uc.txRunner.Run(ctx, func(leadRepo repository.LeadRepository, _ repository.SaleRepository) error {
		lead, err := loadForUpdate(ctx, leadRepo, id)
		if err != nil {
			return err
		}
		from = lead.Stage
		if err := uc.applyStage(ctx, leadRepo, lead, target); err != nil {
			return err
		}
		updated = lead
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StageChanged(string(from), string(target))
	uc.log.Info().Str("lead_id", id).Str("from", string(from)).Str("to", string(target)).Msg("etapa del lead actualizada")
	return toLeadResponse(updated), nil
}

// RecordActivity suma delta al contador de actividad. No invalida el ai_score guardado.
func (uc *LeadUseCase) RecordActivity(ctx context.Context, id string, in dto.RecordActivityRequest) (*dto.LeadResponse, error) {
	if in.Delta <= 0 {
		return nil, fmt.Errorf("%w: delta must be positive", domain.ErrInvalidInput)
	}
	var updated *entity.Lead
	err := uc.txRunner.Run(ctx, func(leadRepo repository.LeadRepository, _ repository.SaleRepository) error {
		lead, err := loadForUpdate(ctx, leadRepo, id)
		if err != nil {
			return err
		}
		if in.Delta > maxActivityCount-lead.ActivityCount {
			return fmt.Errorf("%w: activity_count would exceed %d", domain.ErrInvalidInput, maxActivityCount)
		}
		lead.ActivityCount += in.Delta
		lead.UpdatedAt = time.Now()
		if err := leadRepo.Update(ctx, lead); err != nil {
			return err
		}
		updated = lead
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLeadResponse(updated), nil
}

// Evaluate calcula el score del lead y persiste solo ai_score; la etapa no cambia.
// Recomendación y explicación se recalculan en cada llamada y no se guardan.
func (uc *LeadUseCase) Evaluate(ctx context.Context, id string) (*dto.ScoringResponse, error) {
	var result scoring.Result
	err := uc.txRunner.Run(ctx, func(leadRepo repository.LeadRepository, _ repository.SaleRepository) error {
		lead, err := loadForUpdate(ctx, leadRepo, id)
		if err != nil {
			return err
		}
		result, err = uc.scorer.Evaluate(ctx, snapshotOf(lead))
		if err != nil {
			return fmt.Errorf("evaluate lead: %w", err)
		}
		score := result.Score
		lead.AIScore = &score
		lead.UpdatedAt = time.Now()
		return leadRepo.Update(ctx, lead)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.LeadEvaluated(result.Recommendation)
	uc.log.Info().
		Str("lead_id", id).
		Float64("score", result.Score).
		Str("recommendation", result.Recommendation).
		Msg("lead evaluado")
	return &dto.ScoringResponse{
		Score:          result.Score,
		Recommendation: result.Recommendation,
		Reason:         result.Reason,
	}, nil
}

// PromoteToSale transfiere el lead a ventas y crea su Sale en una sola transacción.
// Orden de validación: existencia, dominio, score y por último la transición a transferred.
// Si la venta no se puede crear, la transacción se revierte y el lead conserva su etapa.
func (uc *LeadUseCase) PromoteToSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	var from entity.LeadStage
	err := uc.txRunner.Run(ctx, func(leadRepo repository.LeadRepository, saleRepo repository.SaleRepository) error {
		lead, err := loadForUpdate(ctx, leadRepo, id)
		if err != nil {
			return err
		}
		from = lead.Stage
		if !lead.HasBusinessDomain() {
			return &domain.PreconditionFailedError{Reason: reasonMissingDomain}
		}
		if lead.AIScore == nil || !scoring.MeetsThreshold(*lead.AIScore) {
			return &domain.PreconditionFailedError{Reason: reasonLowScore}
		}
		if err := uc.applyStage(ctx, leadRepo, lead, entity.LeadStageTransferred); err != nil {
			return err
		}
		sale = &entity.Sale{
			ID:        uuid.New().String(),
			LeadID:    lead.ID,
			Stage:     entity.SaleStageNew,
			CreatedAt: time.Now(),
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		return nil
	})
	uc.metrics.PromotionFinished(promotionOutcome(err))
	if err != nil {
		uc.log.Warn().Err(err).Str("lead_id", id).Msg("promoción a venta rechazada")
		return nil, err
	}
	uc.metrics.StageChanged(string(from), string(entity.LeadStageTransferred))
	uc.log.Info().Str("lead_id", id).Str("sale_id", sale.ID).Msg("lead transferido a ventas")
	return toSaleResponse(sale), nil
}

// GetSaleByLead obtiene la venta asociada a un lead.
func (uc *LeadUseCase) GetSaleByLead(ctx context.Context, leadID string) (*dto.SaleResponse, error) {
	lead, err := uc.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrLeadNotFound
	}
	sale, err := uc.saleRepo.GetByLeadID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return toSaleResponse(sale), nil
}

// applyStage valida lead.Stage -> target y persiste dentro de la tx del caller.
// Compartido por ChangeStage y PromoteToSale.
func (uc *LeadUseCase) applyStage(ctx context.Context, leadRepo repository.LeadRepository, lead *entity.Lead, target entity.LeadStage) error {
	if err := lifecycle.Validate(lead.Stage, target); err != nil {
		uc.log.Warn().Str("lead_id", lead.ID).Str("from", string(lead.Stage)).Str("to", string(target)).Msg("transición de etapa rechazada")
		return err
	}
	lead.Stage = target
	lead.UpdatedAt = time.Now()
	return leadRepo.Update(ctx, lead)
}

func loadForUpdate(ctx context.Context, leadRepo repository.LeadRepository, id string) (*entity.Lead, error) {
	lead, err := leadRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrLeadNotFound
	}
	return lead, nil
}

func snapshotOf(lead *entity.Lead) scoring.Snapshot {
	s := scoring.Snapshot{
		Source:        string(lead.Source),
		Stage:         string(lead.Stage),
		ActivityCount: lead.ActivityCount,
	}
	if lead.BusinessDomain != nil {
		s.BusinessDomain = string(*lead.BusinessDomain)
	}
	return s
}

func promotionOutcome(err error) string {
	switch {
	case err == nil:
		return ports.PromotionPromoted
	case errors.Is(err, domain.ErrNotFound):
		return ports.PromotionNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return ports.PromotionInvalidStage
	}
	var pf *domain.PreconditionFailedError
	if errors.As(err, &pf) {
		if pf.Reason == reasonMissingDomain {
			return ports.PromotionNoDomain
		}
		return ports.PromotionLowScore
	}
	return ports.PromotionInfrastructure
}

func toLeadResponse(l *entity.Lead) *dto.LeadResponse {
	if l == nil {
		return nil
	}
	out := &dto.LeadResponse{
		ID:            l.ID,
		Source:        string(l.Source),
		Stage:         string(l.Stage),
		ActivityCount: l.ActivityCount,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if l.BusinessDomain != nil {
		d := string(*l.BusinessDomain)
		out.BusinessDomain = &d
	}
	if l.AIScore != nil {
		s := *l.AIScore
		out.AIScore = &s
	}
	return out
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:        s.ID,
		LeadID:    s.LeadID,
		Stage:     string(s.Stage),
		CreatedAt: s.CreatedAt,
	}
}
