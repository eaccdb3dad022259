package database

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/utils"
)

// setupTestDB creates a fresh, migrated SQLite database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "library.db")
	db, err := NewDatabase(config.Database{Driver: config.DriverSQLite, Path: dbPath, LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase(t *testing.T) {
	db := setupTestDB(t)

	t.Run("creates catalog tables", func(t *testing.T) {
		assert.True(t, db.DB.Migrator().HasTable("authors"))
		assert.True(t, db.DB.Migrator().HasTable("books"))
	})

	t.Run("records schema version", func(t *testing.T) {
		version, dirty, err := db.SchemaVersion()
		require.NoError(t, err)
		assert.Equal(t, uint(1), version)
		assert.False(t, dirty)
	})

	t.Run("ping succeeds", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, db.Ping(ctx))
	})
}

func TestNewDatabase_ReopenIsNoop(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.db")
	cfg := config.Database{Driver: config.DriverSQLite, Path: dbPath, LogLevel: "silent"}

	first, err := NewDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, first.DB.Create(&entities.Author{Name: "Clarice Lispector"}).Error)
	require.NoError(t, first.Close())

	second, err := NewDatabase(cfg)
	require.NoError(t, err)
	defer second.Close()

	var count int64
	require.NoError(t, second.DB.Model(&entities.Author{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "migrations must not recreate existing tables")
}

func TestMigrateDown(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.MigrateDown())

	assert.False(t, db.DB.Migrator().HasTable("books"))
	assert.False(t, db.DB.Migrator().HasTable("authors"))

	version, _, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)

	require.NoError(t, db.MigrateUp())
	assert.True(t, db.DB.Migrator().HasTable("books"))
}

func TestMigrate_LeavesApplicationPoolAlone(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.MigrateDown())
		require.NoError(t, db.MigrateUp())
	}

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	assert.Equal(t, 0, sqlDB.Stats().InUse)
	assert.NoError(t, db.Ping(context.Background()))
	assert.True(t, db.DB.Migrator().HasTable("authors"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "./library.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("./library.db"))
	assert.Equal(t, "file:library.db?cache=shared&_foreign_keys=on&_busy_timeout=5000", sqliteDSN("file:library.db?cache=shared"))
}

func TestAuthorNameKeyHook(t *testing.T) {
	db := setupTestDB(t)

	author := &entities.Author{Name: "Émile Zola"}
	require.NoError(t, db.DB.Create(author).Error)

	var stored entities.Author
	require.NoError(t, db.DB.First(&stored, author.ID).Error)
	assert.Equal(t, "Émile Zola", stored.Name)
	assert.Equal(t, "emile zola", stored.NameKey)

	stored.Name = "Émile Édouard Charles Antoine Zola"
	require.NoError(t, db.DB.Save(&stored).Error)
	require.NoError(t, db.DB.First(&stored, author.ID).Error)
	assert.Equal(t, "emile edouard charles antoine zola", stored.NameKey)
}

func TestNameKeyColumnFitsFoldedNames(t *testing.T) {
	// 100 is the longest name validation accepts; "ß" folds to two runes.
	key := utils.FoldName(strings.Repeat("ß", 100))
	require.Equal(t, 200, utf8.RuneCountInString(key))

	width := regexp.MustCompile(`name_key VARCHAR\((\d+)\)`)
	for _, driver := range []string{config.DriverSQLite, config.DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			ddl, err := migrationsFS.ReadFile("migrations/" + driver + "/000001_create_library.up.sql")
			require.NoError(t, err)

			match := width.FindSubmatch(ddl)
			require.NotNil(t, match)
			size, err := strconv.Atoi(string(match[1]))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, size, utf8.RuneCountInString(key))
		})
	}

	t.Run("stored through the hook", func(t *testing.T) {
		db := setupTestDB(t)
		author := &entities.Author{Name: strings.Repeat("ß", 100)}
		require.NoError(t, db.DB.Create(author).Error)
		assert.Equal(t, strings.Repeat("ss", 100), author.NameKey)
	})
}
