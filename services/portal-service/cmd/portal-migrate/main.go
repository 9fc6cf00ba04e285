package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/randevubot/randevubot/libs/config"
	"github.com/randevubot/randevubot/libs/runtime"
	"github.com/randevubot/randevubot/services/portal-service/migrations"
)

// Usage: portal-migrate [up|down|force <version>]
func main() {
	os.Exit(run(os.Args[1:]))
}

type command struct {
	name    string
	version int
}

var errUsage = errors.New("usage: portal-migrate [up|down|force <version>]")

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: "up"}, nil
	}
	switch args[0] {
	case "up", "down":
		return command{name: args[0]}, nil
	case "force":
		if len(args) < 2 {
			return command{}, fmt.Errorf("force needs a version: %w", errUsage)
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return command{}, fmt.Errorf("invalid version %q: %w", args[1], errUsage)
		}
		return command{name: "force", version: version}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

// run returns the process exit code so deferred closes happen before exit.
func run(args []string) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := runtime.NewLogger("portal-migrate", config.String("LOG_LEVEL", "info"))

	cmd, err := parseCommand(args)
	if err != nil {
		logger.Error("bad arguments", "err", err)
		return 2
	}
	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		logger.Error("config failed", "err", err)
		return 1
	}
	conn, err := sql.Open("pgx", dbURL)
	if err != nil {
		logger.Error("open db failed", "err", err)
		return 1
	}
	defer func() { _ = conn.Close() }()
	if err := conn.Ping(); err != nil {
		logger.Error("db connection failed", "err", err)
		return 1
	}

	dbDriver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		logger.Error("db driver failed", "err", err)
		return 1
	}
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		logger.Error("migration source failed", "err", err)
		return 1
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", dbDriver)
	if err != nil {
		logger.Error("migrator init failed", "err", err)
		return 1
	}
	defer func() { _, _ = m.Close() }()

	switch cmd.name {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "force":
		err = m.Force(cmd.version)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("migration failed", "command", cmd.name, "err", err)
		return 1
	}
	version, dirty, _ := m.Version()
	logger.Info("migrations complete", "command", cmd.name, "version", version, "dirty", dirty)
	return 0
}
