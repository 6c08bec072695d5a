package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"commons/internal/models"
	"commons/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "is_admin"}).
					AddRow(1, "alice", false)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "alice"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(99, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
		},
		{
			name:   "Database Error",
			userID: 1,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(1, 1).
					WillReturnError(errors.New("connection timeout"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			switch {
			case tt.expectedError:
				assert.Error(t, err)
				assert.Nil(t, user)
			case tt.expectedUser == nil:
				assert.NoError(t, err)
				assert.Nil(t, user)
			default:
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.expectedUser.Username, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{Username: "alice", Password: "x.y"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Password: "hash.salt"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	err := repo.Create(ctx, &models.User{Username: "alice", Password: "other.salt"})
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.False(t, found.IsAdmin)

	missing, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := repo.SetAdmin(ctx, "alice", true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SetAdmin(ctx, "nobody", true)
	require.NoError(t, err)
	assert.False(t, ok)

	admins, err := repo.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "alice", admins[0].Username)
}

func TestUserRepository_ExternalID(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "local-one", Password: "a.b"}))
	require.NoError(t, repo.Create(ctx, &models.User{Username: "local-two", Password: "a.b"}))

	subject := "idp-123"
	linked := &models.User{Username: "dana", ExternalID: &subject, Password: "a.b"}
	require.NoError(t, repo.Create(ctx, linked))

	found, err := repo.GetByExternalID(ctx, subject)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, linked.ID, found.ID)

	missing, err := repo.GetByExternalID(ctx, "idp-unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Create(ctx, &models.User{Username: "dana-2", ExternalID: &subject, Password: "a.b"})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, repo.Delete(ctx, linked.ID))
	gone, err := repo.GetByID(ctx, linked.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
