// Package repomanager constructs repositories for a storage backend and runs
// its schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/dashauth/internal/dbx"
	"github.com/dmitrijs2005/dashauth/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/dashauth/internal/server/repositories/refreshtokens"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
