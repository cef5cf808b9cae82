package persistence

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/easybill/backend/internal/domain/account"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAccountRepository_CreateAndFind(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormAccountRepository(db.DB)
	ctx := context.Background()

	created := seedAccount(t, db, "Owner@Acme.test")

	t.Run("find by email is case-insensitive", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "OWNER@acme.TEST")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.True(t, found.VerifyPassword("secret123"))
	})

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Traders", found.CompanyName)
		assert.Equal(t, 560001, found.Pincode)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("exists by email", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "owner@acme.test")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@acme.test")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate email maps to duplicate key", func(t *testing.T) {
		dup, err := account.NewAccount("Other", "owner@acme.test", "secret123", "", "Elsewhere", 1)
		require.NoError(t, err)

		err = repo.Create(ctx, dup)
		require.Error(t, err)
		assert.True(t, shared.IsDuplicateKey(err))
		assert.ErrorIs(t, err, account.ErrEmailTaken)
	})
}

func TestGormAccountRepository_PostgresUniqueViolation(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	repo := NewGormAccountRepository(gormDB)
	a, err := account.NewAccount("Acme", "a@acme.test", "secret123", "", "Road 1", 1)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "accounts"`)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_accounts_email"})

	err = repo.Create(context.Background(), a)
	assert.True(t, shared.IsDuplicateKey(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormAccountRepository_FindByIDQueryShape(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_name", "email", "pincode"}).
			AddRow(id.String(), "Acme", "a@acme.test", 560001))

	found, err := NewGormAccountRepository(gormDB).FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", found.CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
