package testutil

import (
	"context"

	"github.com/fiscalmanager/backend/internal/domain/catalog"
	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/identity"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ScopeRecorder remembers every scope a factory was asked for
type ScopeRecorder struct {
	Scopes []shared.TenantScope
}

func (r *ScopeRecorder) record(scope shared.TenantScope) {
	r.Scopes = append(r.Scopes, scope)
}

// MockCompanyRepository is a mock implementation of company.Repository.
// It is its own factory.
type MockCompanyRepository struct {
	mock.Mock
	ScopeRecorder
}

func (m *MockCompanyRepository) ForTenant(scope shared.TenantScope) company.Repository {
	m.record(scope)
	return m
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

// MockProductRepository is a mock implementation of catalog.ProductRepository.
// It is its own factory.
type MockProductRepository struct {
	mock.Mock
	ScopeRecorder
}

func (m *MockProductRepository) ForTenant(scope shared.TenantScope) catalog.ProductRepository {
	m.record(scope)
	return m
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of fiscal.InvoiceRepository.
// It is its own factory.
type MockInvoiceRepository struct {
	mock.Mock
	ScopeRecorder
}

func (m *MockInvoiceRepository) ForTenant(scope shared.TenantScope) fiscal.InvoiceRepository {
	m.record(scope)
	return m
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fiscal.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter fiscal.InvoiceFilter) ([]fiscal.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]fiscal.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *fiscal.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Summarize(ctx context.Context, filter fiscal.InvoiceFilter) (fiscal.InvoiceSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(fiscal.InvoiceSummary), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

var (
	_ identity.UserRepository          = (*MockUserRepository)(nil)
	_ company.RepositoryFactory        = (*MockCompanyRepository)(nil)
	_ catalog.ProductRepositoryFactory = (*MockProductRepository)(nil)
	_ fiscal.InvoiceRepositoryFactory  = (*MockInvoiceRepository)(nil)
)
