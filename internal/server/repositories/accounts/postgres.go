// Package accounts provides a PostgreSQL-backed repository for registered
// accounts.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dashauth/internal/common"
	"github.com/dmitrijs2005/dashauth/internal/dbx"
	"github.com/dmitrijs2005/dashauth/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account row and returns it with the server-assigned
// creation timestamp filled in.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (id, username, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Username, account.Email, account.PasswordHash).Scan(&account.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// GetByEmail returns the account with the given email,
// or common.ErrorNotFound.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at FROM accounts
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

// GetByUsername returns the account with the given username,
// or common.ErrorNotFound.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at FROM accounts
		 WHERE username = $1
		 `
	return r.getOne(ctx, query, username)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
