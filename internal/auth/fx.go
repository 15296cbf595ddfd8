package auth

import (
	"github.com/smallbiznis/orderhub/internal/auth/service"
	"github.com/smallbiznis/orderhub/internal/auth/session"
	"github.com/smallbiznis/orderhub/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(token.NewManager),
	fx.Provide(session.NewManager),
	fx.Provide(service.New),
)
