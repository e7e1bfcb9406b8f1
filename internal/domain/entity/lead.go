package entity

import "time"

// LeadSource origen del lead; inmutable tras la creación.
type LeadSource string

const (
	LeadSourcePartner LeadSource = "partner"
	LeadSourceScanner LeadSource = "scanner"
	LeadSourceManual  LeadSource = "manual"
)

// IsValid informa si el origen es uno de los conocidos.
func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourcePartner, LeadSourceScanner, LeadSourceManual:
		return true
	}
	return false
}

// LeadStage etapa del ciclo de vida del lead.
type LeadStage string

const (
	LeadStageNew         LeadStage = "new"
	LeadStageContacted   LeadStage = "contacted"
	LeadStageQualified   LeadStage = "qualified"
	LeadStageTransferred LeadStage = "transferred"
	LeadStageLost        LeadStage = "lost"
)

// LeadStages todas las etapas, en orden del ciclo de vida.
var LeadStages = []LeadStage{
	LeadStageNew, LeadStageContacted, LeadStageQualified, LeadStageTransferred, LeadStageLost,
}

// IsValid informa si la etapa es una de las conocidas.
func (s LeadStage) IsValid() bool {
	for _, st := range LeadStages {
		if st == s {
			return true
		}
	}
	return false
}

// BusinessDomain clasificación de negocio del lead.
type BusinessDomain string

const (
	BusinessDomainFirst  BusinessDomain = "first"
	BusinessDomainSecond BusinessDomain = "second"
	BusinessDomainThird  BusinessDomain = "third"
)

// IsValid informa si el dominio es uno de los conocidos.
func (d BusinessDomain) IsValid() bool {
	switch d {
	case BusinessDomainFirst, BusinessDomainSecond, BusinessDomainThird:
		return true
	}
	return false
}

// Lead representa un cliente potencial que recorre el embudo comercial.
// Stage solo cambia por transiciones validadas; AIScore es nil hasta la primera evaluación.
type Lead struct {
	ID             string
	Source         LeadSource
	Stage          LeadStage
	BusinessDomain *BusinessDomain
	ActivityCount  int
	AIScore        *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasBusinessDomain informa si el lead tiene un dominio de negocio no vacío.
func (l *Lead) HasBusinessDomain() bool {
	return l.BusinessDomain != nil && *l.BusinessDomain != ""
}

// Clone devuelve una copia sin punteros compartidos.
func (l *Lead) Clone() *Lead {
	c := *l
	if l.BusinessDomain != nil {
		d := *l.BusinessDomain
		c.BusinessDomain = &d
	}
	if l.AIScore != nil {
		s := *l.AIScore
		c.AIScore = &s
	}
	return &c
}
