package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hospital-accounts/internal/dbx"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX (a *sql.DB or a
// *sql.Tx) and prepares the schema they need.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
