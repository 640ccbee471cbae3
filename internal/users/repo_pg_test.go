package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertWritesAllFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	user := User{
		ID:            "google:123",
		Email:         "jo@example.com",
		FullName:      "Jo Doe",
		GivenName:     "Jo",
		FamilyName:    "Doe",
		PictureURL:    "https://example.com/p.png",
		Provider:      "google",
		EmailVerified: true,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(
			user.ID,
			user.Email,
			user.FullName,
			user.GivenName,
			user.FamilyName,
			user.PictureURL,
			user.Provider,
			user.EmailVerified,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Upsert(context.Background(), user); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, email, full_name").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "given_name", "family_name", "picture_url", "provider", "email_verified", "created_at", "updated_at"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC().Add(-time.Hour)
	updated := time.Now().UTC()

	mock.ExpectQuery("SELECT id, email, full_name").
		WithArgs("google:123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "given_name", "family_name", "picture_url", "provider", "email_verified", "created_at", "updated_at"}).
			AddRow("google:123", "jo@example.com", "Jo Doe", "Jo", "Doe", "", "google", true, created, updated))

	user, err := repo.GetByID(context.Background(), "google:123")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Email != "jo@example.com" || !user.EmailVerified || user.Provider != "google" {
		t.Fatalf("unexpected user: %+v", user)
	}
}
