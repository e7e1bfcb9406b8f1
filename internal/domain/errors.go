package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("not found")
	ErrLeadNotFound = fmt.Errorf("lead %w", ErrNotFound)
	ErrSaleNotFound = fmt.Errorf("sale %w", ErrNotFound)
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrInvalidTransition y ErrPreconditionFailed son los centinelas de los
	// errores tipados de abajo; sirven para errors.Is sin leer los campos.
	ErrInvalidTransition  = errors.New("invalid stage transition")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// InvalidTransitionError violación de la máquina de estados del lead.
type InvalidTransitionError struct {
	From   string
	To     string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// Is permite errors.Is(err, ErrInvalidTransition).
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// PreconditionFailedError regla de negocio no cumplida (promoción a venta).
type PreconditionFailedError struct {
	Reason string
}

func (e *PreconditionFailedError) Error() string {
	return e.Reason
}

// Is permite errors.Is(err, ErrPreconditionFailed).
func (e *PreconditionFailedError) Is(target error) bool {
	return target == ErrPreconditionFailed
}

// IsBusinessError informa si err pertenece a la taxonomía de negocio
// (NotFound, InvalidTransition, PreconditionFailed). El resto es infraestructura.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrPreconditionFailed)
}
