// Package tenant binds GORM handles to a single owner.
//
// Every tenant-owned table carries an owner_id column. Repositories never
// receive a raw *gorm.DB for those tables; they receive a *DB built from a
// shared.TenantScope, and every statement issued through it carries
// owner_id = <scope owner>.
//
// Usage:
//
//	scoped := tenant.New(gormDB, scope)
//	scoped.WithContext(ctx).Find(&companies) // WHERE "companies"."owner_id" = ...
package tenant

import (
	"context"
	"errors"

	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is the owner column of every tenant-owned table
const Column = "owner_id"

// ErrOwnerMismatch is returned when an entity owned by another user is
// written through a scoped handle
var ErrOwnerMismatch = errors.New("entity does not belong to the tenant scope")

// OwnerScope returns a GORM scope filtering on owner_id of the current table
func OwnerScope(ownerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: Column},
			Value:  ownerID,
		})
	}
}

// DB is a GORM handle bound to one owner
type DB struct {
	db      *gorm.DB
	ownerID uuid.UUID
}

// New binds db to scope. A zero scope yields a handle whose statements all
// fail with shared.ErrTenantRequired.
func New(db *gorm.DB, scope shared.TenantScope) *DB {
	return &DB{db: db, ownerID: scope.OwnerID()}
}

// OwnerID returns the owner every statement is filtered on
func (t *DB) OwnerID() uuid.UUID {
	return t.ownerID
}

// WithContext returns a GORM DB with the owner filter applied
func (t *DB) WithContext(ctx context.Context) *gorm.DB {
	db := t.db.WithContext(ctx)
	if t.ownerID == uuid.Nil {
		_ = db.AddError(shared.ErrTenantRequired)
		return db
	}
	return db.Scopes(OwnerScope(t.ownerID))
}

// ForCreate returns an unfiltered handle for inserts, after checking the
// row's owner matches the scope
func (t *DB) ForCreate(ctx context.Context, ownerID uuid.UUID) (*gorm.DB, error) {
	if t.ownerID == uuid.Nil {
		return nil, shared.ErrTenantRequired
	}
	if ownerID != t.ownerID {
		return nil, ErrOwnerMismatch
	}
	return t.db.WithContext(ctx), nil
}

// Transaction runs fn in a database transaction. The *DB passed to fn is
// bound to the same owner.
func (t *DB) Transaction(ctx context.Context, fn func(tx *DB) error) error {
	if t.ownerID == uuid.Nil {
		return shared.ErrTenantRequired
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DB{db: tx, ownerID: t.ownerID})
	})
}
