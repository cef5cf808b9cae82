package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/easybill/backend/internal/domain/account"
	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/domain/customer"
	"github.com/easybill/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newSQLiteDB opens a private in-memory database with the schema applied
func newSQLiteDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabaseWithCustomLogger(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: ":memory:",
	}, gormlogger.Discard)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newMockGormDB returns a GORM handle on the PostgreSQL dialector backed by sqlmock
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func seedAccount(t *testing.T, db *Database, email string) *account.Account {
	t.Helper()
	a, err := account.NewAccount("Acme Traders", email, "secret123", "GSTIN1", "1 Market Road", 560001)
	require.NoError(t, err)
	require.NoError(t, NewGormAccountRepository(db.DB).Create(context.Background(), a))
	return a
}

func seedCustomer(t *testing.T, db *Database, accountID uuid.UUID, name string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(accountID, name, "2 Side Street", "555-0100", "")
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db.DB).Save(context.Background(), c))
	return c
}

func newTestBill(t *testing.T, accountID, customerID uuid.UUID, number string, date time.Time) *billing.Bill {
	t.Helper()
	b, err := billing.NewBill(accountID, billing.BillInput{
		BillNumber: number,
		CustomerID: customerID,
		Date:       &date,
		Items: []billing.LineItem{
			{Description: "Consulting", Rate: decimal.NewFromInt(50), Quantity: decimal.NewFromInt(2)},
		},
		GSTRate: decimal.NewFromInt(18),
	})
	require.NoError(t, err)
	return b
}
