package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"shop-service/models"
	"shop-service/repository"
)

func TestFindByUsername_ReturnsUser(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewUserRepository(gormDB)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
		WithArgs("alice", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "is_active"}).
			AddRow(id, "alice", true))

	user, err := repo.FindByUsername(context.Background(), "alice")

	assert.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.True(t, user.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsername_UnknownUserReturnsNotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs("nobody", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	user, err := repo.FindByUsername(context.Background(), "nobody")

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserCreate_DuplicateUsernameTranslated(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewUserRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{Username: "alice", Password: "hash"})

	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
	assert.NoError(t, mock.ExpectationsWereMet())
}
