package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/domain/repository"
	"github.com/jhoicas/leads-api/internal/infrastructure/memory"
)

func newLead(id string, stage entity.LeadStage, created time.Time) *entity.Lead {
	return &entity.Lead{ID: id, Source: entity.LeadSourceManual, Stage: stage, CreatedAt: created, UpdatedAt: created}
}

func TestStore_RunRevierteSiFalla(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Leads().Create(ctx, newLead("l1", entity.LeadStageNew, time.Now())))

	boom := errors.New("boom")
	err := store.Run(ctx, func(leads repository.LeadRepository, _ repository.SaleRepository) error {
		l, err := leads.GetByIDForUpdate(ctx, "l1")
		require.NoError(t, err)
		l.Stage = entity.LeadStageContacted
		require.NoError(t, leads.Update(ctx, l))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Leads().GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStageNew, got.Stage, "el cambio no debe confirmarse")
}

func TestStore_CopiasIndependientes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	bd := entity.BusinessDomainFirst
	lead := newLead("l1", entity.LeadStageNew, time.Now())
	lead.BusinessDomain = &bd
	require.NoError(t, store.Leads().Create(ctx, lead))

	*lead.BusinessDomain = entity.BusinessDomainThird
	got, err := store.Leads().GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, entity.BusinessDomainFirst, *got.BusinessDomain)
}

func TestStore_VentaUnicaPorLead(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Leads().Create(ctx, newLead("l1", entity.LeadStageTransferred, time.Now())))

	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{ID: "s1", LeadID: "l1", Stage: entity.SaleStageNew}))
	err := store.Sales().Create(ctx, &entity.Sale{ID: "s2", LeadID: "l1", Stage: entity.SaleStageNew})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = store.Sales().Create(ctx, &entity.Sale{ID: "s3", LeadID: "nope", Stage: entity.SaleStageNew})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sale, err := store.Sales().GetByLeadID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "s1", sale.ID)

	missing, err := store.Sales().GetByLeadID(ctx, "otro")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_ListFiltraYPagina(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Leads().Create(ctx, newLead("a", entity.LeadStageNew, base)))
	require.NoError(t, store.Leads().Create(ctx, newLead("b", entity.LeadStageLost, base.Add(time.Hour))))
	require.NoError(t, store.Leads().Create(ctx, newLead("c", entity.LeadStageNew, base.Add(2*time.Hour))))

	all, err := store.Leads().List(ctx, repository.LeadFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID, "más recientes primero")

	stage := entity.LeadStageNew
	onlyNew, err := store.Leads().List(ctx, repository.LeadFilter{Stage: &stage, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, onlyNew, 2)

	page, err := store.Leads().List(ctx, repository.LeadFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].ID)

	empty, err := store.Leads().List(ctx, repository.LeadFilter{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)

	n, err := store.Leads().Count(ctx, repository.LeadFilter{Stage: &stage, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, n, "Count ignora la paginación")
}

func TestStore_LecturasDevuelvenCopias(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Leads().Create(ctx, newLead("l1", entity.LeadStageNew, time.Now())))
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{ID: "s1", LeadID: "l1", Stage: entity.SaleStageNew}))

	got, err := store.Leads().GetByID(ctx, "l1")
	require.NoError(t, err)
	got.Stage = entity.LeadStageLost

	list, err := store.Leads().List(ctx, repository.LeadFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	list[0].ActivityCount = 99

	sale, err := store.Sales().GetByLeadID(ctx, "l1")
	require.NoError(t, err)
	sale.Stage = entity.SaleStageLost

	again, err := store.Leads().GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStageNew, again.Stage)
	assert.Equal(t, 0, again.ActivityCount)
	saleAgain, err := store.Sales().GetByLeadID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStageNew, saleAgain.Stage)
}

func TestStore_LecturaRespetaContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := memory.NewStore().Leads().GetByID(ctx, "l1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_GetInexistenteDevuelveNil(t *testing.T) {
	got, err := memory.NewStore().Leads().GetByID(context.Background(), "nada")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_RunRespetaContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := memory.NewStore().Run(ctx, func(repository.LeadRepository, repository.SaleRepository) error {
		t.Fatal("fn no debe ejecutarse")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
