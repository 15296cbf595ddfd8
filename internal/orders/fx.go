package orders

import (
	"github.com/smallbiznis/orderhub/internal/orders/service"
	"go.uber.org/fx"
)

var Module = fx.Module("orders.service",
	fx.Provide(service.New),
)
