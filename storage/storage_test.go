package storage

import (
	"fmt"
	"os"
	"testing"
	"time"

	"counting-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// dryRunDB opens a mysql-dialect session that renders SQL without
// touching a server. MySQL is the strictest dialect here: "key" is a
// reserved word, so an unquoted column reference shows up in the
// rendered statement.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "test:test@tcp(127.0.0.1:3306)/test",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

func TestLoadQuotesKeyColumn(t *testing.T) {
	db := dryRunDB(t)

	var got string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		got = tx.Statement.SQL.String()
	}))

	store := NewStore(db)
	_, _, err := store.Load("inventory-counts")
	require.NoError(t, err)

	assert.Contains(t, got, "`key`")
	assert.NotContains(t, got, " key =")
}

func TestRemoveQuotesKeyColumn(t *testing.T) {
	db := dryRunDB(t)

	var got string
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("capture_sql", func(tx *gorm.DB) {
		got = tx.Statement.SQL.String()
	}))

	store := NewStore(db)
	require.NoError(t, store.Remove("inventory-session"))

	assert.Contains(t, got, "`key`")
	assert.NotContains(t, got, " key =")
}

func TestSaveQuotesKeyColumn(t *testing.T) {
	db := dryRunDB(t)

	var got string
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("capture_sql", func(tx *gorm.DB) {
		got = tx.Statement.SQL.String()
	}))

	store := NewStore(db)
	require.NoError(t, store.Save("inventory-counts", []byte(`{}`)))

	assert.Contains(t, got, "`key`")
	assert.Contains(t, got, "ON DUPLICATE KEY UPDATE")
}

// TestStoreRoundTrip runs against a live database when STORAGE_TEST_DSN
// is set, e.g.
//
//	STORAGE_TEST_DRIVER=postgres STORAGE_TEST_DSN="host=localhost user=test password=test dbname=test port=5432 sslmode=disable" go test ./storage/
func TestStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("STORAGE_TEST_DSN")
	if dsn == "" {
		t.Skip("set STORAGE_TEST_DSN to run against a live database")
	}

	var dialector gorm.Dialector
	switch driver := os.Getenv("STORAGE_TEST_DRIVER"); driver {
	case "", "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "mssql":
		dialector = sqlserver.Open(dsn)
	default:
		t.Fatalf("unsupported STORAGE_TEST_DRIVER: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StateRecord{}))

	store := NewStore(db)
	key := fmt.Sprintf("storage-test-%d", time.Now().UnixNano())
	t.Cleanup(func() { _ = store.Remove(key) })

	_, ok, err := store.Load(key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(key, []byte(`{"a":1}`)))
	value, ok, err := store.Load(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(value))

	require.NoError(t, store.Save(key, []byte(`{"a":2}`)))
	value, ok, err = store.Load(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":2}`, string(value))

	require.NoError(t, store.Remove(key))
	_, ok, err = store.Load(key)
	require.NoError(t, err)
	assert.False(t, ok)
}
