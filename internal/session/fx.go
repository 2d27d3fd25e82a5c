package session

import (
	"github.com/strongslime/atelier/internal/session/repository"
	"github.com/strongslime/atelier/internal/session/service"
	"go.uber.org/fx"
)

var Module = fx.Module("session.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
