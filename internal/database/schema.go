package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"commons/internal/config"
	"commons/internal/middleware"

	"gorm.io/gorm"
)

// Schema modes selected by DB_SCHEMA_MODE.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// SchemaStatus describes what ApplySchema would do.
type SchemaStatus struct {
	Mode               string
	Environment        string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
}

// schemaPlan is the resolved set of steps for one ApplySchema call.
type schemaPlan struct {
	mode string
	sql  bool
	auto bool
}

// modelIndexes are constraints the gorm tags cannot express. The SQL
// migrations create them too; AutoMigrate-only databases get them here.
var modelIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_user_activities_one_rsvp
		ON user_activities (user_id, event_id, event_type) WHERE activity_type = 'rsvp'`,
}

// planSchema maps DB_SCHEMA_MODE and APP_ENV to schema steps. The embedded
// SQL migrations are the source of truth everywhere. AutoMigrate is a
// development convenience for model changes that have no migration yet, so it
// is refused outside development and test.
func planSchema(cfg *config.Config) (schemaPlan, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode))
	if mode == "" {
		mode = SchemaModeHybrid
	}
	env := strings.ToLower(strings.TrimSpace(cfg.Env))
	local := env == "" || env == "development" || env == "test"

	plan := schemaPlan{mode: mode}
	switch mode {
	case SchemaModeSQL:
		plan.sql = true
	case SchemaModeHybrid:
		plan.sql, plan.auto = true, local
	case SchemaModeAuto:
		if !local {
			return plan, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q", cfg.Env)
		}
		plan.auto = true
	default:
		return plan, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
	}
	return plan, nil
}

// ApplySchema brings the database schema up to date according to the configured mode.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := planSchema(cfg)
	if err != nil {
		return err
	}

	if plan.sql {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}
	if !plan.auto {
		return nil
	}

	middleware.Logger.Info("Running GORM AutoMigrate",
		slog.String("mode", plan.mode), slog.String("env", cfg.Env))
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return EnsureModelIndexes(ctx, db)
}

// EnsureModelIndexes creates the indexes listed in modelIndexes.
func EnsureModelIndexes(ctx context.Context, db *gorm.DB) error {
	for _, stmt := range modelIndexes {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
	}
	return nil
}

// GetSchemaStatus reports the schema plan and the SQL migrations not yet applied.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := planSchema(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:               plan.mode,
		Environment:        cfg.Env,
		WillRunSQL:         plan.sql,
		WillRunAutoMigrate: plan.auto,
	}
	if !plan.sql {
		return status, nil
	}

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	status.AppliedVersions = applied

	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}
	for _, m := range GetMigrations() {
		if !done[m.Version] {
			status.PendingMigrations = append(status.PendingMigrations, m)
		}
	}
	return status, nil
}
