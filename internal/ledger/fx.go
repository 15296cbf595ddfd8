package ledger

import (
	"github.com/smallbiznis/orderhub/internal/ledger/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.repository",
	fx.Provide(repository.New),
)
