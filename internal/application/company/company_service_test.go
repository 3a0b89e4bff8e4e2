package company

import (
	"context"
	"testing"

	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCompanyRepository is a mock implementation of company.Repository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context) ([]company.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByCNPJ(ctx context.Context, cnpj string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cnpj, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// stubFactory hands out one repository and records the scopes requested
type stubFactory struct {
	repo   company.Repository
	scopes []shared.TenantScope
}

func (f *stubFactory) ForTenant(scope shared.TenantScope) company.Repository {
	f.scopes = append(f.scopes, scope)
	return f.repo
}

func newService() (*CompanyService, *MockCompanyRepository, *stubFactory) {
	repo := new(MockCompanyRepository)
	factory := &stubFactory{repo: repo}
	return NewCompanyService(factory, zap.NewNop()), repo, factory
}

func validRequest() CompanyRequest {
	return CompanyRequest{
		Name:     "Padaria Pão Quente",
		CNPJ:     "11.111.111/0001-11",
		Street:   "Rua das Flores",
		Number:   "100",
		District: "Centro",
		City:     "São Paulo",
		State:    "sp",
		ZipCode:  "01000-000",
		Regime:   "Simples Nacional",
	}
}

func existingCompany(t *testing.T, owner uuid.UUID, cnpj string) *company.Company {
	t.Helper()
	addr, err := valueobject.NewAddress("Rua A", "1", "Centro", "Campinas", "SP", "13000-000")
	require.NoError(t, err)
	c, err := company.NewCompany(owner, "Loja", cnpj, addr, fiscal.LucroReal)
	require.NoError(t, err)
	return c
}

func TestCompanyService_Create(t *testing.T) {
	owner := uuid.New()
	scope := shared.MustTenantScope(owner)

	t.Run("persists a company owned by the scope", func(t *testing.T) {
		svc, repo, factory := newService()
		repo.On("ExistsByCNPJ", mock.Anything, "11.111.111/0001-11", uuid.Nil).Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*company.Company")).Return(nil)

		resp, err := svc.Create(context.Background(), scope, validRequest())
		require.NoError(t, err)

		assert.Equal(t, owner, resp.OwnerID)
		assert.Equal(t, "Simples Nacional", resp.Regime)
		assert.Equal(t, "SP", resp.State)
		assert.Equal(t, []shared.TenantScope{scope}, factory.scopes)
		repo.AssertExpectations(t)
	})

	t.Run("CNPJ already used by the owner", func(t *testing.T) {
		svc, repo, _ := newService()
		repo.On("ExistsByCNPJ", mock.Anything, "11.111.111/0001-11", uuid.Nil).Return(true, nil)

		_, err := svc.Create(context.Background(), scope, validRequest())
		require.ErrorIs(t, err, company.ErrCNPJTaken)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeAlreadyExists, de.Code)
		assert.Equal(t, "cnpj", de.Field)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid regime", func(t *testing.T) {
		svc, repo, _ := newService()
		req := validRequest()
		req.Regime = "MEI"

		_, err := svc.Create(context.Background(), scope, req)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "ExistsByCNPJ", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("address error becomes a validation error", func(t *testing.T) {
		svc, _, _ := newService()
		req := validRequest()
		req.City = ""

		_, err := svc.Create(context.Background(), scope, req)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidInput, de.Code)
		assert.Equal(t, "cidade", de.Field)
	})
}

func TestCompanyService_Update(t *testing.T) {
	owner := uuid.New()
	scope := shared.MustTenantScope(owner)

	t.Run("unchanged CNPJ skips the uniqueness check", func(t *testing.T) {
		svc, repo, _ := newService()
		c := existingCompany(t, owner, "11.111.111/0001-11")
		repo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
		repo.On("Save", mock.Anything, c).Return(nil)

		resp, err := svc.Update(context.Background(), scope, c.ID, validRequest())
		require.NoError(t, err)
		assert.Equal(t, "Padaria Pão Quente", resp.Name)
		repo.AssertNotCalled(t, "ExistsByCNPJ", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("changed CNPJ is re-checked excluding the company itself", func(t *testing.T) {
		svc, repo, _ := newService()
		c := existingCompany(t, owner, "22.222.222/0001-22")
		repo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
		repo.On("ExistsByCNPJ", mock.Anything, "11.111.111/0001-11", c.ID).Return(true, nil)

		_, err := svc.Update(context.Background(), scope, c.ID, validRequest())
		assert.ErrorIs(t, err, company.ErrCNPJTaken)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("foreign or unknown company is not found", func(t *testing.T) {
		svc, repo, _ := newService()
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, company.ErrCompanyNotFound)

		_, err := svc.Update(context.Background(), scope, id, validRequest())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCompanyService_ListGetDelete(t *testing.T) {
	owner := uuid.New()
	scope := shared.MustTenantScope(owner)
	svc, repo, _ := newService()

	a := existingCompany(t, owner, "1")
	b := existingCompany(t, owner, "2")
	repo.On("FindAll", mock.Anything).Return([]company.Company{*a, *b}, nil)
	repo.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	repo.On("Delete", mock.Anything, b.ID).Return(nil)

	list, err := svc.List(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)

	got, err := svc.GetByID(context.Background(), scope, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lucro Real", got.Regime)

	require.NoError(t, svc.Delete(context.Background(), scope, b.ID))
	repo.AssertExpectations(t)
}
