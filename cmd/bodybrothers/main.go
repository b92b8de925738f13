package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	"github.com/TwinexTecnologia/bodybrothers/internal/config"
	"github.com/TwinexTecnologia/bodybrothers/internal/logger"
	"github.com/TwinexTecnologia/bodybrothers/internal/migration"
	"github.com/TwinexTecnologia/bodybrothers/internal/seed"
	"github.com/TwinexTecnologia/bodybrothers/internal/server"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
		server.Module,
		seed.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
