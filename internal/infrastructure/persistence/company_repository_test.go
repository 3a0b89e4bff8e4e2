package persistence

import (
	"context"
	"testing"

	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompany(t *testing.T, scope shared.TenantScope, cnpj string) *company.Company {
	t.Helper()
	addr, err := valueobject.NewAddress("Rua A", "10", "Centro", "São Paulo", "SP", "01000-000")
	require.NoError(t, err)
	c, err := company.NewCompany(scope.OwnerID(), "Acme Ltda", cnpj, addr, fiscal.SimplesNacional)
	require.NoError(t, err)
	return c
}

func TestGormCompanyRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	scope := newScope()
	repo := NewGormCompanyRepositoryFactory(db).ForTenant(scope)

	c := newTestCompany(t, scope, "11.111.111/0001-11")
	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
	assert.Equal(t, scope.OwnerID(), found.OwnerID)
	assert.Equal(t, "Acme Ltda", found.Name)
	assert.Equal(t, "11.111.111/0001-11", found.CNPJ)
	assert.Equal(t, "São Paulo", found.Address.City())
	assert.Equal(t, fiscal.SimplesNacional, found.Regime)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormCompanyRepository_Update(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	scope := newScope()
	repo := NewGormCompanyRepositoryFactory(db).ForTenant(scope)

	c := newTestCompany(t, scope, "11.111.111/0001-11")
	require.NoError(t, repo.Save(ctx, c))

	require.NoError(t, c.Update("Acme SA", c.CNPJ, c.Address, fiscal.LucroReal))
	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme SA", found.Name)
	assert.Equal(t, fiscal.LucroReal, found.Regime)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormCompanyRepository_CNPJUniquePerOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	factory := NewGormCompanyRepositoryFactory(db)
	scopeA, scopeB := newScope(), newScope()
	repoA, repoB := factory.ForTenant(scopeA), factory.ForTenant(scopeB)

	require.NoError(t, repoA.Save(ctx, newTestCompany(t, scopeA, "11.111.111/0001-11")))

	t.Run("exists check is scoped", func(t *testing.T) {
		exists, err := repoA.ExistsByCNPJ(ctx, "11.111.111/0001-11", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repoB.ExistsByCNPJ(ctx, "11.111.111/0001-11", uuid.Nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("same cnpj for another owner", func(t *testing.T) {
		assert.NoError(t, repoB.Save(ctx, newTestCompany(t, scopeB, "11.111.111/0001-11")))
	})

	t.Run("duplicate for same owner hits the unique index", func(t *testing.T) {
		err := repoA.Save(ctx, newTestCompany(t, scopeA, "11.111.111/0001-11"))
		assert.ErrorIs(t, err, company.ErrCNPJTaken)
	})

	t.Run("exclude id", func(t *testing.T) {
		all, err := repoA.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)

		exists, err := repoA.ExistsByCNPJ(ctx, "11.111.111/0001-11", all[0].ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormCompanyRepository_TenantIsolation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	factory := NewGormCompanyRepositoryFactory(db)
	owner, intruder := newScope(), newScope()
	ownerRepo, intruderRepo := factory.ForTenant(owner), factory.ForTenant(intruder)

	c := newTestCompany(t, owner, "22.222.222/0001-22")
	require.NoError(t, ownerRepo.Save(ctx, c))

	_, err := intruderRepo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = intruderRepo.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	all, err := intruderRepo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// a foreign entity cannot be written through the intruder's scope
	c.Name = "Hijacked"
	assert.Error(t, intruderRepo.Save(ctx, c))

	found, err := ownerRepo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltda", found.Name)
}

func TestGormCompanyRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	scope := newScope()
	repo := NewGormCompanyRepositoryFactory(db).ForTenant(scope)

	c := newTestCompany(t, scope, "33.333.333/0001-33")
	require.NoError(t, repo.Save(ctx, c))
	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err := repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), shared.ErrNotFound)
}
