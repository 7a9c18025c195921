package ports

import (
	"context"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

type CatalogSource interface {
	Load(ctx context.Context) (domain.Catalog, error)
}
