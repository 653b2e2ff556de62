// Command migrate inspects and changes the catalog database schema.
//
//	migrate status          show the schema plan and pending SQL migrations
//	migrate up              apply pending SQL migrations (Postgres only)
//	migrate auto            run GORM AutoMigrate for every model
//	migrate down <version>  revert one SQL migration
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"holocron/internal/config"
	"holocron/internal/database"

	"gorm.io/gorm"
)

type command func(ctx context.Context, cfg *config.Config, db *gorm.DB, args []string) error

var commands = map[string]command{
	"status": status,
	"up":     up,
	"auto":   auto,
	"down":   down,
}

var errUsage = errors.New("usage: migrate <status|up|auto|down> [version]")

func main() {
	flag.Parse()
	if err := run(flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return errUsage
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cmd(ctx, cfg, db, args[1:])
}

func status(ctx context.Context, cfg *config.Config, db *gorm.DB, _ []string) error {
	s, err := database.GetSchemaStatus(ctx, db, cfg)
	if err != nil {
		return fmt.Errorf("schema status: %w", err)
	}
	log.Printf("driver=%s mode=%s env=%s sql=%t auto=%t applied=%v",
		s.Driver, s.Mode, s.Environment, s.WillRunSQL, s.WillRunAutoMigrate, s.AppliedVersions)
	for _, m := range s.PendingMigrations {
		log.Printf("pending %s", m)
	}
	return nil
}

func up(ctx context.Context, cfg *config.Config, db *gorm.DB, _ []string) error {
	if !cfg.UsesPostgres() {
		return errors.New("sql migrations target Postgres; set DATABASE_URL or use auto for sqlite")
	}
	n, err := database.NewMigrator(db).Up(ctx)
	if err != nil {
		return err
	}
	log.Printf("applied %d migration(s)", n)
	return nil
}

func auto(ctx context.Context, cfg *config.Config, db *gorm.DB, _ []string) error {
	cfg.DBSchemaMode = database.SchemaModeAuto
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("models migrated")
	return nil
}

func down(ctx context.Context, cfg *config.Config, db *gorm.DB, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	if !cfg.UsesPostgres() {
		return errors.New("sql migrations target Postgres; set DATABASE_URL")
	}
	if err := database.NewMigrator(db).Down(ctx, version); err != nil {
		return err
	}
	log.Printf("reverted migration %d", version)
	return nil
}
