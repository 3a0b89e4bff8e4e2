package tenant

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnscopedStatement is raised when a read, update or delete against an
// owned table carries no owner_id condition
var ErrUnscopedStatement = errors.New("statement on tenant-owned table without owner_id condition")

// Guard rejects unscoped statements against tenant-owned tables. It is
// the safety net behind DB: a repository that forgets the scope fails
// instead of leaking rows.
type Guard struct {
	tables map[string]struct{}
}

// NewGuard creates a guard for the given tables
func NewGuard(tables ...string) *Guard {
	g := &Guard{tables: make(map[string]struct{}, len(tables))}
	for _, t := range tables {
		g.tables[t] = struct{}{}
	}
	return g
}

// Register installs the guard callbacks on db
func (g *Guard) Register(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("tenant:guard_query", g.check); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("tenant:guard_update", g.check); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("tenant:guard_delete", g.check); err != nil {
		return err
	}
	return db.Callback().Row().Before("gorm:row").Register("tenant:guard_row", g.check)
}

// Unregister removes the guard callbacks
func (g *Guard) Unregister(db *gorm.DB) {
	_ = db.Callback().Query().Remove("tenant:guard_query")
	_ = db.Callback().Update().Remove("tenant:guard_update")
	_ = db.Callback().Delete().Remove("tenant:guard_delete")
	_ = db.Callback().Row().Remove("tenant:guard_row")
}

func (g *Guard) check(db *gorm.DB) {
	if db.Error != nil || db.Statement.Unscoped {
		return
	}
	if _, owned := g.tables[db.Statement.Table]; !owned {
		return
	}
	if g.hasOwnerCondition(db) {
		return
	}
	_ = db.AddError(ErrUnscopedStatement)
}

func (g *Guard) hasOwnerCondition(db *gorm.DB) bool {
	whereClause, ok := db.Statement.Clauses["WHERE"]
	if !ok {
		return false
	}
	where, ok := whereClause.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, expr := range where.Exprs {
		if exprHasOwner(expr) {
			return true
		}
	}
	return false
}

func exprHasOwner(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == Column
		}
		if s, ok := e.Column.(string); ok {
			return s == Column
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == Column
		}
	case clause.Expr:
		return strings.Contains(e.SQL, Column)
	case clause.NamedExpr:
		return strings.Contains(e.SQL, Column)
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if exprHasOwner(cond) {
				return true
			}
		}
	}
	return false
}
