package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var (
		dsn            string
		migrationsPath string
		down           bool
	)

	flag.StringVar(&dsn, "dsn", os.Getenv("DB_URL"), "postgres connection url")
	flag.StringVar(&migrationsPath, "migrations", "migrations", "path to migrations directory")
	flag.BoolVar(&down, "down", false, "roll back one migration instead of migrating up")
	flag.Parse()

	if dsn == "" {
		log.Fatal("dsn is required (flag -dsn or env DB_URL)")
	}

	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}
	defer m.Close()

	if down {
		if err := m.Steps(-1); err != nil {
			log.Fatalf("failed to roll back: %v", err)
		}
		fmt.Println("rolled back one migration")
		return
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("no migrations to apply")
			return
		}
		log.Fatalf("failed to apply migrations: %v", err)
	}

	fmt.Println("migrations applied")
}
