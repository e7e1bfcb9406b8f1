package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

const leadColumns = `id, source, stage, business_domain, activity_count, ai_score, created_at, updated_at`

// LeadRepo implementación de LeadRepository sobre PostgreSQL (usable con pool o tx).
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// Create persiste un nuevo lead.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		lead.ID, string(lead.Source), string(lead.Stage), domainToText(lead.BusinessDomain),
		lead.ActivityCount, scoreToNumeric(lead.AIScore), lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead por ID.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

// GetByIDForUpdate obtiene el lead y bloquea la fila (SELECT FOR UPDATE).
func (r *LeadRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 FOR UPDATE`
	lead, err := scanLead(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead for update: %w", err)
	}
	return lead, nil
}

// Update actualiza las columnas mutables del lead (source e id no cambian).
func (r *LeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET stage = $2, business_domain = $3, activity_count = $4, ai_score = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		lead.ID, string(lead.Stage), domainToText(lead.BusinessDomain),
		lead.ActivityCount, scoreToNumeric(lead.AIScore), lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

// List lista leads (más recientes primero), opcionalmente por etapa.
func (r *LeadRepo) List(ctx context.Context, f repository.LeadFilter) ([]*entity.Lead, error) {
	where, args := leadWhere(f)
	args = append(args, f.Limit, f.Offset)
	query := `SELECT ` + leadColumns + ` FROM leads` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, lead)
	}
	return list, rows.Err()
}

// Count cuenta los leads que cumplen el filtro (sin paginar).
func (r *LeadRepo) Count(ctx context.Context, f repository.LeadFilter) (int, error) {
	where, args := leadWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM leads`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

func leadWhere(f repository.LeadFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Stage != nil {
		args = append(args, string(*f.Stage))
		conds = append(conds, fmt.Sprintf("stage = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return ` WHERE ` + strings.Join(conds, " AND "), args
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var (
		l      entity.Lead
		source string
		stage  string
		bd     *string
		score  decimal.NullDecimal
	)
	if err := row.Scan(&l.ID, &source, &stage, &bd, &l.ActivityCount, &score, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Source = entity.LeadSource(source)
	l.Stage = entity.LeadStage(stage)
	if bd != nil {
		d := entity.BusinessDomain(*bd)
		l.BusinessDomain = &d
	}
	l.AIScore = numericToScore(score)
	return &l, nil
}

func domainToText(d *entity.BusinessDomain) *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}
