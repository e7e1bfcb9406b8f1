// Package lifecycle contiene la máquina de estados del lead.
package lifecycle

import (
	"slices"

	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
)

// InitialStage etapa con la que nace todo lead.
const InitialStage = entity.LeadStageNew

const transferredReason = "cannot change stage of a transferred lead"

// Transitions tabla de transiciones permitidas. Sin bucles ni saltos;
// transferred y lost son terminales.
var Transitions = map[entity.LeadStage][]entity.LeadStage{
	entity.LeadStageNew:         {entity.LeadStageContacted, entity.LeadStageLost},
	entity.LeadStageContacted:   {entity.LeadStageQualified, entity.LeadStageLost},
	entity.LeadStageQualified:   {entity.LeadStageTransferred, entity.LeadStageLost},
	entity.LeadStageTransferred: {},
	entity.LeadStageLost:        {},
}

// Allowed devuelve las etapas destino permitidas desde from.
func Allowed(from entity.LeadStage) []entity.LeadStage {
	return slices.Clone(Transitions[from])
}

// CanTransition informa si from -> to está en la tabla.
func CanTransition(from, to entity.LeadStage) bool {
	return slices.Contains(Transitions[from], to)
}

// IsTerminal informa si la etapa no admite más transiciones.
func IsTerminal(stage entity.LeadStage) bool {
	return len(Transitions[stage]) == 0
}

// Validate comprueba la transición y devuelve *domain.InvalidTransitionError si no procede.
// Un lead transferido tiene su propio mensaje aunque la tabla ya lo cubra.
func Validate(from, to entity.LeadStage) error {
	if from == entity.LeadStageTransferred {
		return &domain.InvalidTransitionError{From: string(from), To: string(to), Reason: transferredReason}
	}
	if !CanTransition(from, to) {
		return &domain.InvalidTransitionError{From: string(from), To: string(to)}
	}
	return nil
}
