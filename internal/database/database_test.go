package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"holocron/internal/config"
	"holocron/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestConfigurePool(t *testing.T) {
	db := openMemory(t)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestConfigurePool_Defaults(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, configurePool(db, &config.Config{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 25, sqlDB.Stats().MaxOpenConnections)
}

func TestPersistentModels_IncludesCatalogAndFavorites(t *testing.T) {
	var haveFavorite, havePlanet, havePerson, haveUser bool
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *models.Favorite:
			haveFavorite = true
		case *models.Planet:
			havePlanet = true
		case *models.Person:
			havePerson = true
		case *models.User:
			haveUser = true
		}
	}
	assert.True(t, haveFavorite && havePlanet && havePerson && haveUser)
}

func TestDialector(t *testing.T) {
	assert.Equal(t, "sqlite", Dialector(&config.Config{SQLitePath: ":memory:"}).Name())
	assert.Equal(t, "postgres", Dialector(&config.Config{DatabaseURL: "postgresql://u:p@localhost/db"}).Name())
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000002_second.up.sql":   {Data: []byte("SELECT 2;")},
		"m/000002_second.down.sql": {Data: []byte("SELECT -2;")},
		"m/000001_first.up.sql":    {Data: []byte("SELECT 1;")},
		"m/000001_first.down.sql":  {Data: []byte("SELECT -1;")},
		"m/README.md":              {Data: []byte("ignored")},
		"m/bad.up.sql":             {Data: []byte("ignored")},
	}

	loaded, err := LoadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 1, loaded[0].Version)
	assert.Equal(t, "first", loaded[0].Name)
	assert.Equal(t, "SELECT -1;", loaded[0].DownScript)
	assert.Equal(t, "000002_second", loaded[1].String())
}

func TestLoadMigrations_MissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000001_first.up.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := LoadMigrations(fsys, "m")
	assert.Error(t, err)
}

func TestEmbeddedMigrations(t *testing.T) {
	all := EmbeddedMigrations()
	require.NotEmpty(t, all)
	assert.Equal(t, 1, all[0].Version)
	assert.Equal(t, "000001_init_catalog", all[0].String())
	assert.Contains(t, all[0].UpScript, "CREATE TABLE IF NOT EXISTS favorites")
	assert.Contains(t, all[0].DownScript, "DROP TABLE")
}

func TestCheckApplied(t *testing.T) {
	known := []Migration{{Version: 1}, {Version: 2}}

	assert.NoError(t, checkApplied(nil, known))
	assert.NoError(t, checkApplied([]int{1, 2}, known))

	err := checkApplied([]int{1, 7, 3}, known)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000003, 000007")
}

func testMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "sectors", UpScript: "CREATE TABLE sectors (id INTEGER PRIMARY KEY);", DownScript: "DROP TABLE sectors;"},
		{Version: 2, Name: "systems", UpScript: "CREATE TABLE systems (id INTEGER PRIMARY KEY);", DownScript: "DROP TABLE systems;"},
	}
}

func TestMigrator_UpAndDown(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	m := newMigrator(db, testMigrations())

	applied, err := m.Applied(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)

	n, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, db.Migrator().HasTable("sectors"))
	assert.True(t, db.Migrator().HasTable("systems"))

	n, err = m.Up(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, m.Down(ctx, 2))
	assert.False(t, db.Migrator().HasTable("systems"))

	pending, err := m.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "000002_systems", pending[0].String())

	assert.ErrorContains(t, m.Down(ctx, 2), "has not been applied")
	assert.ErrorContains(t, m.Down(ctx, 9), "not found")
}

func TestMigrator_FailedScriptIsNotRecorded(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	migrations := testMigrations()
	migrations[1].UpScript = "CREATE TABLE broken ("
	m := newMigrator(db, migrations)

	n, err := m.Up(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, err.Error(), "000002_systems")

	applied, err := m.Applied(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, applied)
}

func TestMigrator_UnknownAppliedVersion(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	_, err := newMigrator(db, testMigrations()).Up(ctx)
	require.NoError(t, err)

	_, err = newMigrator(db, testMigrations()[:1]).Pending(ctx)
	assert.ErrorContains(t, err, "000002")
}

func TestPlanSchema(t *testing.T) {
	pg := "postgresql://localhost/holocron"
	tests := []struct {
		name     string
		cfg      config.Config
		wantSQL  bool
		wantAuto bool
		wantErr  bool
	}{
		{"sqlite default", config.Config{}, false, true, false},
		{"sqlite sql", config.Config{DBSchemaMode: "sql"}, false, true, false},
		{"postgres hybrid dev", config.Config{DatabaseURL: pg, Env: "development"}, true, true, false},
		{"postgres hybrid prod", config.Config{DatabaseURL: pg, Env: "production", DBSchemaMode: "hybrid"}, true, false, false},
		{"postgres sql", config.Config{DatabaseURL: pg, DBSchemaMode: "sql"}, true, false, false},
		{"postgres auto", config.Config{DatabaseURL: pg, DBSchemaMode: "auto"}, false, true, false},
		{"unknown", config.Config{DatabaseURL: pg, DBSchemaMode: "yolo"}, false, false, true},
		{"unknown sqlite", config.Config{DBSchemaMode: "yolo"}, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := planSchema(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, plan.sql)
			assert.Equal(t, tt.wantAuto, plan.auto)
		})
	}
}

func TestApplySchema_SQLiteCreatesTables(t *testing.T) {
	db := openMemory(t)
	cfg := &config.Config{Env: "test", DBSchemaMode: "hybrid"}

	require.NoError(t, ApplySchema(context.Background(), db, cfg))

	for _, model := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(model))
	}

	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Driver)
	assert.False(t, status.WillRunSQL)
	assert.True(t, status.WillRunAutoMigrate)
}

func TestPing(t *testing.T) {
	assert.Error(t, Ping(context.Background(), nil))
	assert.NoError(t, Ping(context.Background(), openMemory(t)))
}

func TestConnectWithOptions_SQLiteFile(t *testing.T) {
	cfg := &config.Config{
		SQLitePath:   filepath.Join(t.TempDir(), "holocron.db"),
		DBSchemaMode: SchemaModeHybrid,
	}

	db, err := ConnectWithOptions(cfg, ConnectOptions{})
	require.NoError(t, err)
	assert.False(t, db.Migrator().HasTable(&models.Planet{}))
	closeDB(t, db)

	db, err = Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { closeDB(t, db) })
	assert.True(t, db.Migrator().HasTable(&models.Planet{}))
	assert.True(t, db.Migrator().HasTable(&models.Favorite{}))
	assert.Same(t, db, DB)
	assert.NoError(t, Ping(context.Background(), db))
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	_ = sqlDB.Close()
}
