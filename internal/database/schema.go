package database

import (
	"context"
	"fmt"
	"log/slog"

	"holocron/internal/config"
	"holocron/internal/middleware"

	"gorm.io/gorm"
)

const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// schemaPlan lists the steps ApplySchema takes for one configuration.
type schemaPlan struct {
	mode string
	sql  bool
	auto bool
}

// planSchema maps DB_SCHEMA_MODE onto schema steps. The embedded SQL targets
// Postgres, so a SQLite store is always built with AutoMigrate. Hybrid skips
// AutoMigrate in production so the SQL migrations stay authoritative there.
func planSchema(cfg *config.Config) (schemaPlan, error) {
	plan := schemaPlan{mode: cfg.DBSchemaMode}
	if plan.mode == "" {
		plan.mode = SchemaModeHybrid
	}

	switch plan.mode {
	case SchemaModeSQL:
		plan.sql = true
	case SchemaModeAuto:
		plan.auto = true
	case SchemaModeHybrid:
		plan.sql = true
		plan.auto = !cfg.IsProduction()
	default:
		return schemaPlan{}, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", plan.mode)
	}

	if !cfg.UsesPostgres() {
		plan.sql, plan.auto = false, true
	}
	return plan, nil
}

// ApplySchema brings the schema up to date according to DB_SCHEMA_MODE.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := planSchema(cfg)
	if err != nil {
		return err
	}

	if plan.sql {
		applied, err := NewMigrator(db).Up(ctx)
		if err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
		middleware.Logger.Info("SQL migrations up to date", slog.Int("applied", applied))
	}

	if plan.auto {
		middleware.Logger.Info("Running GORM AutoMigrate",
			slog.String("mode", plan.mode),
			slog.String("driver", db.Dialector.Name()),
		)
		if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	return nil
}

// SchemaStatus describes what ApplySchema would do for a configuration.
type SchemaStatus struct {
	Mode               string
	Environment        string
	Driver             string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
}

// GetSchemaStatus reports the schema plan and, when SQL migrations are part
// of it, which versions are applied and pending.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := planSchema(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:               plan.mode,
		Environment:        cfg.Env,
		Driver:             db.Dialector.Name(),
		WillRunSQL:         plan.sql,
		WillRunAutoMigrate: plan.auto,
	}
	if !plan.sql {
		return status, nil
	}

	m := NewMigrator(db)
	if status.AppliedVersions, err = m.Applied(ctx); err != nil {
		return nil, err
	}
	if status.PendingMigrations, err = m.Pending(ctx); err != nil {
		return nil, err
	}
	return status, nil
}
