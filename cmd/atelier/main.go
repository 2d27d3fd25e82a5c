package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/strongslime/atelier/internal/catalog"
	"github.com/strongslime/atelier/internal/clock"
	"github.com/strongslime/atelier/internal/config"
	"github.com/strongslime/atelier/internal/logger"
	"github.com/strongslime/atelier/internal/migration"
	"github.com/strongslime/atelier/internal/providers/pdf"
	"github.com/strongslime/atelier/internal/server"
	"github.com/strongslime/atelier/internal/session"
	"github.com/strongslime/atelier/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		catalog.Module,
		session.Module,
		pdf.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
