package database

import (
	"context"
	"testing"
	"testing/fstest"

	"commons/internal/config"
	"commons/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestConfigurePool(t *testing.T) {
	db := openSQLite(t)

	err := configurePool(db, &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestDSN(t *testing.T) {
	dsn := DSN(&config.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "commons"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=commons sslmode=disable", dsn)
}

func TestEmbeddedMigrations(t *testing.T) {
	all := GetMigrations()
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].Version)
	assert.Equal(t, "init_schema", all[0].Name)
	assert.Contains(t, all[0].UpScript, "CREATE TABLE IF NOT EXISTS videos")
	assert.Contains(t, all[1].UpScript, "idx_user_activities_one_rsvp")
	assert.NotEmpty(t, all[1].DownScript)
	assert.Contains(t, all[2].UpScript, "idx_users_external_id")

	assert.Equal(t, "000002_user_engagement", GetMigrationByVersion(2).String())
	assert.Nil(t, GetMigrationByVersion(99))
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000002_second.up.sql":   {Data: []byte("CREATE TABLE b (id INTEGER)")},
		"m/000002_second.down.sql": {Data: []byte("DROP TABLE b")},
		"m/000001_first.up.sql":    {Data: []byte("CREATE TABLE a (id INTEGER)")},
		"m/000001_first.down.sql":  {Data: []byte("DROP TABLE a")},
		"m/README.md":              {Data: []byte("ignored")},
	}

	loaded, err := LoadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "first", loaded[0].Name)
	assert.Equal(t, "second", loaded[1].Name)
}

func TestLoadMigrations_MissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000001_first.up.sql": {Data: []byte("CREATE TABLE a (id INTEGER)")},
	}
	_, err := LoadMigrations(fsys, "m")
	assert.Error(t, err)
}

func TestRunMigrations_AppliesOnceAndRollsBack(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	registered := []Migration{
		{Version: 1, Name: "first", UpScript: "CREATE TABLE widgets (id INTEGER PRIMARY KEY)", DownScript: "DROP TABLE widgets"},
		{Version: 2, Name: "second", UpScript: "CREATE TABLE gadgets (id INTEGER PRIMARY KEY)", DownScript: "DROP TABLE gadgets"},
	}
	store := NewMigrationStore(db)

	require.NoError(t, runMigrations(ctx, store, db, registered))
	require.NoError(t, runMigrations(ctx, store, db, registered))

	applied, err := store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, applied)
	assert.True(t, db.Migrator().HasTable("gadgets"))

	require.NoError(t, store.RevertMigration(ctx, registered[1]))
	assert.False(t, db.Migrator().HasTable("gadgets"))
	applied, err = store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, applied)
}

func TestRunMigrations_RejectsUnknownAppliedVersion(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, db.AutoMigrate(&MigrationLog{}))
	require.NoError(t, db.Create(&MigrationLog{Version: 42, Name: "from_the_future"}).Error)

	err := runMigrations(ctx, NewMigrationStore(db), db, []Migration{{Version: 1, Name: "first", UpScript: "SELECT 1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000042")
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		env, mode       string
		runSQL, runAuto bool
		wantErr         bool
	}{
		{"development", "", true, true, false},
		{"production", "hybrid", true, false, false},
		{"development", "sql", true, false, false},
		{"test", "auto", false, true, false},
		{"production", "auto", false, false, true},
		{"staging", "hybrid", true, false, false},
		{"development", "yolo", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.mode, func(t *testing.T) {
			plan, err := planSchema(&config.Config{Env: tt.env, DBSchemaMode: tt.mode})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, plan.sql)
			assert.Equal(t, tt.runAuto, plan.auto)
		})
	}
}

func TestApplySchema_AutoModeCreatesTables(t *testing.T) {
	db := openSQLite(t)
	err := ApplySchema(context.Background(), db, &config.Config{Env: "test", DBSchemaMode: SchemaModeAuto})
	require.NoError(t, err)

	for _, m := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	assert.True(t, db.Migrator().HasTable(&models.UserActivity{}))
	assert.True(t, db.Migrator().HasIndex(&models.UserActivity{}, "idx_user_activities_one_rsvp"))

	status, err := GetSchemaStatus(context.Background(), db, &config.Config{Env: "test", DBSchemaMode: SchemaModeAuto})
	require.NoError(t, err)
	assert.False(t, status.WillRunSQL)
	assert.True(t, status.WillRunAutoMigrate)
}
