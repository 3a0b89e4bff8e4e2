// Package testutil provides shared test helpers for the FiscalManager
// backend: repository mocks, API envelope decoding and fixed tenant ids.
package testutil

import (
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// fixtureNamespace seeds the deterministic ids below
var fixtureNamespace = uuid.MustParse("3f1c9a52-6a0e-4b8e-9d27-1c5e0b7a4f10")

// NewTestUUID derives a stable id from seed so fixtures and assertions can
// refer to the same company or product without sharing variables.
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(fixtureNamespace, []byte(seed))
}

// TestUserID is the owner of every fixture unless a test says otherwise
func TestUserID() uuid.UUID {
	return NewTestUUID("usuario-padrao")
}

// TestScope returns the tenant scope of TestUserID
func TestScope() shared.TenantScope {
	return shared.MustTenantScope(TestUserID())
}

// ForeignScope returns the scope of a second tenant, used to check that
// records of TestUserID stay invisible to it
func ForeignScope() shared.TenantScope {
	return shared.MustTenantScope(NewTestUUID("outro-usuario"))
}
