package main

import (
	"context"
	"log"
	"os"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
)

// main applies goose migrations. The first argument is the goose command (up, down, status,
// redo, version), "up" by default; the remaining arguments are passed to goose.
func main() {
	cfg := config.MustLoad()

	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	dbpool, dbErr := repository.NewDatabase(context.Background(), cfg.Postgres)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal(err)
	}

	dtb := stdlib.OpenDBFromPool(dbpool)
	defer dtb.Close()

	if migrationErr := goose.Run(command, dtb, cfg.Migrations.Dir, args...); migrationErr != nil {
		log.Fatal(migrationErr) //nolint:gocritic // deferred closes are irrelevant on fatal exit
	}

	log.Printf("✅ Migrations command %q applied successfully", command)
}
