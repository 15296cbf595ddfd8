package booking

import (
	"github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/smallbiznis/orderhub/internal/booking/mapper"
	"github.com/smallbiznis/orderhub/internal/booking/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("booking",
	fx.Provide(
		repository.NewCatalog,
		NewRegistry,
		mapper.New,
	),
)

func NewRegistry(db *gorm.DB) *domain.Registry {
	return domain.NewRegistry(repository.Stores(db)...)
}
