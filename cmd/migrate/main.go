// Command migrate manages the database schema.
//
// Usage:
//
//	migrate [-path dir] <command> [args]
//
// Commands:
//
//	up              apply all pending migrations
//	down            roll back the most recent migration
//	step <n>        apply n migrations (negative rolls back)
//	version         print the current schema version
//	force <v>       mark the schema as version v without running anything
//	create <name>   create a new up/down migration pair
//	list            list migration files
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/practiq/backend/internal/infrastructure/config"
	"github.com/practiq/backend/internal/infrastructure/logger"
	"github.com/practiq/backend/internal/infrastructure/migration"
)

func main() {
	var (
		path     = flag.String("path", "migrations", "directory containing migration files")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log, err := logger.New(config.LogConfig{Level: *logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	command := args[0]

	// create and list only touch the filesystem, no database needed
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Usage: migrate create <name>")
		}
		mf, err := migration.CreateMigration(*path, args[1])
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Created migration",
			zap.String("up", mf.UpPath),
			zap.String("down", mf.DownPath),
		)
		return
	case "list":
		names, err := migration.ListMigrations(*path)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	m, err := migration.New(db, *path, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error("Error closing migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
	case "down":
		if err := m.Steps(-1); err != nil {
			log.Fatal("Rollback failed", zap.Error(err))
		}
	case "step":
		if len(args) < 2 {
			log.Fatal("Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("arg", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to read version", zap.Error(err))
		}
		fmt.Printf("version: %d dirty: %v\n", version, dirty)
	case "force":
		if len(args) < 2 {
			log.Fatal("Usage: migrate force <version>")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version", zap.String("arg", args[1]))
		}
		if err := m.Force(v); err != nil {
			log.Fatal("Force failed", zap.Error(err))
		}
	default:
		log.Fatal("Unknown command", zap.String("command", command))
	}
}
