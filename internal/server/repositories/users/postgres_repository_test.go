package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/hospital-accounts/internal/common"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertUserQuery = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*username,\s*role\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at\s*$`
	findByEmailQ    = `(?s)^SELECT\s+id,\s*email,\s*username,\s*role,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	getByIDQ        = `(?s)^SELECT\s+id,\s*email,\s*username,\s*role,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	listQ           = `(?s)^SELECT\s+id,\s*email,\s*username,\s*role,\s*created_at\s+FROM\s+users\s+ORDER\s+BY\s+seq\s*$`
)

var userColumns = []string{"id", "email", "username", "role", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestAdd_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(insertUserQuery).
		WithArgs("42", "newpatient@test.com", "newpatient", "Patient").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Add(context.Background(), &models.User{ID: "42", Email: "newpatient@test.com", UserName: "newpatient", Role: "Patient"})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if got.ID != "42" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestAdd_GeneratesID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUserQuery).
		WithArgs(sqlmock.AnyArg(), "a@test.com", "a", "Admin").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	in := &models.User{Email: "a@test.com", UserName: "a", Role: "Admin"}
	got, err := repo.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}
	if in.ID != "" {
		t.Fatal("input must not be mutated")
	}
}

func TestAdd_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUserQuery).
		WithArgs(sqlmock.AnyArg(), "admin@test.com", "admin2", "Admin").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Add(context.Background(), &models.User{Email: "admin@test.com", UserName: "admin2", Role: "Admin"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestAdd_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUserQuery).
		WithArgs(sqlmock.AnyArg(), "a@test.com", "", "").
		WillReturnError(errors.New("db down"))

	_, err := repo.Add(context.Background(), &models.User{Email: "a@test.com"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findByEmailQ).
		WithArgs("locked@test.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("4", "locked@test.com", "", "Locked", time.Now()))

	got, err := repo.FindByEmail(context.Background(), "locked@test.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if got.ID != "4" || !got.IsLocked() {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findByEmailQ).
		WithArgs("ghost@test.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@test.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFindByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findByEmailQ).
		WithArgs("a@test.com").
		WillReturnError(errors.New("db err"))

	_, err := repo.FindByEmail(context.Background(), "a@test.com")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getByIDQ).
		WithArgs("2").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("2", "doctor@test.com", "doc", "Doctor", time.Now()))

	got, err := repo.Get(context.Background(), "2")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Email != "doctor@test.com" || got.UserName != "doc" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(listQ).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("1", "admin@test.com", "", "Admin", now).
			AddRow("2", "doctor@test.com", "", "Doctor", now))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("unexpected users: %+v", got)
	}
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WillReturnRows(sqlmock.NewRows(userColumns))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestList_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WillReturnError(errors.New("db err"))

	_, err := repo.List(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestList_RowError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("1", "admin@test.com", "", "Admin", time.Now()).
			RowError(0, errors.New("row broke")))

	_, err := repo.List(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*row broke`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped row error, got %v", err)
	}
}

func TestRepositoriesSatisfyInterface(t *testing.T) {
	var _ Repository = (*PostgresRepository)(nil)
	var _ Repository = (*MemoryRepository)(nil)
}
