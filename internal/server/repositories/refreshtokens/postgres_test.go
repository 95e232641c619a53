package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/dashauth/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+refresh_tokens\s*\(account_id,\s*token,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`
	mock.ExpectExec(q).
		WithArgs("a-1", "tok", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), "a-1", "tok", time.Hour); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), "a-1", "tok", time.Hour)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFind_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expires := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{"account_id", "expires_at"}).AddRow("a-1", expires)
	mock.ExpectQuery(`SELECT\s+account_id,\s*expires_at`).
		WithArgs("tok").
		WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got.AccountID != "a-1" || got.Token != "tok" {
		t.Fatalf("unexpected token row: %+v", got)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+account_id,\s*expires_at`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+refresh_tokens`).
		WithArgs("tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "tok"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
