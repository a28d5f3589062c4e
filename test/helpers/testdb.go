package helpers

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"marketsafe_backend/database"
	"marketsafe_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbCounter uint64

// NewTestDB opens a fresh in-memory database with the full schema migrated.
// Each call gets its own database, so tests stay independent.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", atomic.AddUint64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open in-memory database")

	// cache=shared keeps the in-memory schema alive while pooled
	// connections come and go.
	sqlDB, err := db.DB()
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db), "migrate test schema")

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// CreateAccount inserts an account, hashing the password when a raw one was
// given. Accounts are verified by default so most tests skip the email step.
func CreateAccount(t *testing.T, db *gorm.DB, account *models.Account) *models.Account {
	t.Helper()

	if account.PasswordHash != "" && account.PasswordHash[0] != '$' {
		hashed, err := bcrypt.GenerateFromPassword([]byte(account.PasswordHash), bcrypt.DefaultCost)
		require.NoError(t, err, "hash test password")
		account.PasswordHash = string(hashed)
	}

	require.NoError(t, db.Create(account).Error, "create test account")
	return account
}

// NewVerifiedAccount builds a verified account with a unique email.
func NewVerifiedAccount(t *testing.T, db *gorm.DB, password string) *models.Account {
	t.Helper()

	return CreateAccount(t, db, &models.Account{
		Email:        fmt.Sprintf("student_%d@umanitoba.ca", time.Now().UnixNano()),
		PasswordHash: password,
		Fname:        "Test",
		Lname:        "Student",
		Verified:     true,
	})
}
