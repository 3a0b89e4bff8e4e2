// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Each model converts to and from its domain entity (ToDomain / FromDomain)
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: BaseModel and OwnedModel (owner_id tenant key)
// - identity.go: users
// - company.go: companies
// - catalog.go: products
// - fiscal.go: invoices and invoice_lines
//
// The PostgreSQL schema is created by the SQL files under migrations/ and
// must stay in sync with these models.
package models
