// Comando migrate: aplica o revierte las migraciones de db/migrations contra
// la base configurada.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
package main

import (
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/stock-analyzer-api/pkg/config"
	"github.com/jhoicas/stock-analyzer-api/pkg/logger"
)

const migrationsPath = "file://db/migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "migrate",
	})

	if len(os.Args) < 2 {
		log.Fatal().Msg("uso: migrate up|down")
	}

	m, err := migrate.New(migrationsPath, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migraciones")
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		log.Fatal().Str("cmd", os.Args[1]).Msg("comando desconocido")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Msg("ejecutar migración")
	}

	version, dirty, _ := m.Version()
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migración completada")
}
