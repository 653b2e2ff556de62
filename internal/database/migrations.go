package database

import (
	"cmp"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"holocron/internal/middleware"

	"gorm.io/gorm"
)

// Migration is one versioned pair of up/down SQL scripts.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

func (m Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}

//go:embed migrations/*.sql
var migrationFS embed.FS

var catalogMigrations = mustLoadEmbedded()

func mustLoadEmbedded() []Migration {
	loaded, err := LoadMigrations(migrationFS, "migrations")
	if err != nil {
		panic(fmt.Sprintf("embedded migrations: %v", err))
	}
	return loaded
}

// EmbeddedMigrations returns the catalog migrations compiled into the binary.
func EmbeddedMigrations() []Migration {
	return slices.Clone(catalogMigrations)
}

var upScriptName = regexp.MustCompile(`^(\d+)_(\w+)\.up\.sql$`)

// LoadMigrations reads NNNNNN_name.up.sql / .down.sql pairs from dir, ordered
// by version. Every up script needs a matching down script.
func LoadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	loaded := make([]Migration, 0, len(files))
	for _, file := range files {
		match := upScriptName.FindStringSubmatch(path.Base(file))
		if match == nil {
			middleware.Logger.Warn("Skipping migration with invalid naming", slog.String("file", file))
			continue
		}
		version, _ := strconv.Atoi(match[1])

		up, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		downFile := strings.TrimSuffix(file, ".up.sql") + ".down.sql"
		down, err := fs.ReadFile(fsys, downFile)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", downFile, err)
		}

		loaded = append(loaded, Migration{
			Version:    version,
			Name:       match[2],
			UpScript:   string(up),
			DownScript: string(down),
		})
	}

	slices.SortFunc(loaded, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	return loaded, nil
}

// migrationLog records one applied version.
type migrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (migrationLog) TableName() string {
	return "migration_logs"
}

// Migrator applies and reverts SQL migrations, tracking versions in
// migration_logs.
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

// NewMigrator returns a Migrator over the embedded catalog migrations.
func NewMigrator(db *gorm.DB) *Migrator {
	return newMigrator(db, catalogMigrations)
}

func newMigrator(db *gorm.DB, migrations []Migration) *Migrator {
	return &Migrator{db: db, migrations: migrations}
}

// Applied lists the recorded versions in ascending order. A database that
// has never been migrated has none.
func (m *Migrator) Applied(ctx context.Context) ([]int, error) {
	db := m.db.WithContext(ctx)
	if !db.Migrator().HasTable(&migrationLog{}) {
		return nil, nil
	}
	var versions []int
	if err := db.Model(&migrationLog{}).Order("version ASC").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("read migration_logs: %w", err)
	}
	return versions, nil
}

// Pending returns the migrations not yet applied. It fails when the log holds
// versions this build does not ship.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkApplied(applied, m.migrations); err != nil {
		return nil, err
	}

	var pending []Migration
	for _, mig := range m.migrations {
		if !slices.Contains(applied, mig.Version) {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

// Up applies every pending migration in version order and reports how many
// ran. Each script and its log row commit together.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.db.WithContext(ctx).AutoMigrate(&migrationLog{}); err != nil {
		return 0, fmt.Errorf("prepare migration_logs: %w", err)
	}
	pending, err := m.Pending(ctx)
	if err != nil {
		return 0, err
	}

	for i, mig := range pending {
		middleware.Logger.Info("Applying migration", slog.String("migration", mig.String()))
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(mig.UpScript).Error; err != nil {
				return err
			}
			return tx.Create(&migrationLog{Version: mig.Version, Name: mig.Name}).Error
		})
		if err != nil {
			return i, fmt.Errorf("apply %s: %w", mig, err)
		}
	}
	return len(pending), nil
}

// Down reverts one applied migration.
func (m *Migrator) Down(ctx context.Context, version int) error {
	idx := slices.IndexFunc(m.migrations, func(mig Migration) bool { return mig.Version == version })
	if idx < 0 {
		return fmt.Errorf("migration version %d not found", version)
	}
	mig := m.migrations[idx]

	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(applied, version) {
		return fmt.Errorf("migration %s has not been applied", mig)
	}

	middleware.Logger.Info("Rolling back migration", slog.String("migration", mig.String()))
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(mig.DownScript).Error; err != nil {
			return fmt.Errorf("revert %s: %w", mig, err)
		}
		return tx.Where("version = ?", version).Delete(&migrationLog{}).Error
	})
}

func checkApplied(applied []int, known []Migration) error {
	var unknown []int
	for _, version := range applied {
		if !slices.ContainsFunc(known, func(mig Migration) bool { return mig.Version == version }) {
			unknown = append(unknown, version)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	slices.Sort(unknown)
	labels := make([]string, len(unknown))
	for i, version := range unknown {
		labels[i] = fmt.Sprintf("%06d", version)
	}
	return fmt.Errorf("migration_logs has versions this build does not ship: %s", strings.Join(labels, ", "))
}
