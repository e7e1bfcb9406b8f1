package leads

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
)

// fold normaliza valores de enumeración recibidos del exterior (" Partner " -> "partner").
// cases.Caser guarda estado, por eso se crea uno por llamada.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func parseSource(s string) (entity.LeadSource, error) {
	src := entity.LeadSource(fold(s))
	if !src.IsValid() {
		return "", fmt.Errorf("%w: unknown lead source %q", domain.ErrInvalidInput, s)
	}
	return src, nil
}

// parseBusinessDomain devuelve nil si no se envió dominio (o vino en blanco).
func parseBusinessDomain(s *string) (*entity.BusinessDomain, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	d := entity.BusinessDomain(fold(*s))
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: unknown business domain %q", domain.ErrInvalidInput, *s)
	}
	return &d, nil
}

func parseStage(s string) (entity.LeadStage, error) {
	st := entity.LeadStage(fold(s))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: unknown lead stage %q", domain.ErrInvalidInput, s)
	}
	return st, nil
}
