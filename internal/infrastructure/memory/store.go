// Package memory implementa los puertos de persistencia en memoria (DB_DRIVER=memory y tests).
// Run serializa las transacciones con un mutex y trabaja sobre una copia del estado:
// si fn devuelve error la copia se descarta, igual que un ROLLBACK.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/jhoicas/leads-api/internal/application/leads"
	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/domain/repository"
)

var _ leads.TxRunner = (*Store)(nil)

type state struct {
	leads map[string]*entity.Lead
	sales map[string]*entity.Sale // por lead_id
}

func (s *state) clone() *state {
	return &state{leads: maps.Clone(s.leads), sales: maps.Clone(s.sales)}
}

// Store almacén en memoria de leads y ventas.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: &state{
		leads: make(map[string]*entity.Lead),
		sales: make(map[string]*entity.Sale),
	}}
}

// Run ejecuta fn con repos atados a una copia del estado y la confirma solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	leadRepo repository.LeadRepository,
	saleRepo repository.SaleRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.st.clone()
	if err := fn(&leadRepo{st: tx}, &saleRepo{st: tx}); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// view ejecuta una lectura directamente sobre el estado confirmado, sin copiarlo.
// Los repos devuelven copias, así que fn no puede modificar el estado.
func (s *Store) view(ctx context.Context, fn func(*leadRepo, *saleRepo) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&leadRepo{st: s.st}, &saleRepo{st: s.st})
}

// Leads repositorio de leads en modo autocommit.
func (s *Store) Leads() repository.LeadRepository { return autoLeadRepo{s: s} }

// Sales repositorio de ventas en modo autocommit.
func (s *Store) Sales() repository.SaleRepository { return autoSaleRepo{s: s} }

type leadRepo struct{ st *state }

func (r *leadRepo) Create(_ context.Context, lead *entity.Lead) error {
	if _, ok := r.st.leads[lead.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.leads[lead.ID] = lead.Clone()
	return nil
}

func (r *leadRepo) GetByID(_ context.Context, id string) (*entity.Lead, error) {
	l, ok := r.st.leads[id]
	if !ok {
		return nil, nil
	}
	return l.Clone(), nil
}

func (r *leadRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Lead, error) {
	return r.GetByID(ctx, id)
}

func (r *leadRepo) Update(_ context.Context, lead *entity.Lead) error {
	if _, ok := r.st.leads[lead.ID]; !ok {
		return domain.ErrLeadNotFound
	}
	r.st.leads[lead.ID] = lead.Clone()
	return nil
}

func (r *leadRepo) List(_ context.Context, f repository.LeadFilter) ([]*entity.Lead, error) {
	list := make([]*entity.Lead, 0, len(r.st.leads))
	for _, l := range r.st.leads {
		if matches(l, f) {
			list = append(list, l.Clone())
		}
	}
	// Mismo orden que la consulta SQL: más recientes primero.
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if f.Offset >= len(list) {
		return []*entity.Lead{}, nil
	}
	list = list[f.Offset:]
	if f.Limit > 0 && f.Limit < len(list) {
		list = list[:f.Limit]
	}
	return list, nil
}

func (r *leadRepo) Count(_ context.Context, f repository.LeadFilter) (int, error) {
	n := 0
	for _, l := range r.st.leads {
		if matches(l, f) {
			n++
		}
	}
	return n, nil
}

func matches(l *entity.Lead, f repository.LeadFilter) bool {
	return f.Stage == nil || l.Stage == *f.Stage
}

type saleRepo struct{ st *state }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if _, ok := r.st.leads[sale.LeadID]; !ok {
		return domain.ErrLeadNotFound
	}
	if _, ok := r.st.sales[sale.LeadID]; ok {
		return domain.ErrDuplicate
	}
	c := *sale
	r.st.sales[sale.LeadID] = &c
	return nil
}

func (r *saleRepo) GetByLeadID(_ context.Context, leadID string) (*entity.Sale, error) {
	s, ok := r.st.sales[leadID]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

type autoLeadRepo struct{ s *Store }

func (r autoLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	return r.s.Run(ctx, func(l repository.LeadRepository, _ repository.SaleRepository) error {
		return l.Create(ctx, lead)
	})
}

func (r autoLeadRepo) GetByID(ctx context.Context, id string) (lead *entity.Lead, err error) {
	err = r.s.view(ctx, func(l *leadRepo, _ *saleRepo) error {
		lead, err = l.GetByID(ctx, id)
		return err
	})
	return lead, err
}

func (r autoLeadRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Lead, error) {
	return r.GetByID(ctx, id)
}

func (r autoLeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	return r.s.Run(ctx, func(l repository.LeadRepository, _ repository.SaleRepository) error {
		return l.Update(ctx, lead)
	})
}

func (r autoLeadRepo) List(ctx context.Context, f repository.LeadFilter) (list []*entity.Lead, err error) {
	err = r.s.view(ctx, func(l *leadRepo, _ *saleRepo) error {
		list, err = l.List(ctx, f)
		return err
	})
	return list, err
}

func (r autoLeadRepo) Count(ctx context.Context, f repository.LeadFilter) (n int, err error) {
	err = r.s.view(ctx, func(l *leadRepo, _ *saleRepo) error {
		n, err = l.Count(ctx, f)
		return err
	})
	return n, err
}

type autoSaleRepo struct{ s *Store }

func (r autoSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.s.Run(ctx, func(_ repository.LeadRepository, s repository.SaleRepository) error {
		return s.Create(ctx, sale)
	})
}

func (r autoSaleRepo) GetByLeadID(ctx context.Context, leadID string) (sale *entity.Sale, err error) {
	err = r.s.view(ctx, func(_ *leadRepo, s *saleRepo) error {
		sale, err = s.GetByLeadID(ctx, leadID)
		return err
	})
	return sale, err
}
