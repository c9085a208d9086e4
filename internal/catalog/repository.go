package catalog

import (
	"context"

	"github.com/martshift/dashboard-service/internal/catalog/dto"
	"github.com/martshift/dashboard-service/internal/model"
)

type Repository interface {
	// ListAll returns the full current catalog in iteration order. This is
	// the read the dashboard aggregation consumes.
	ListAll(ctx context.Context) ([]model.Product, error)

	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error

	// AdjustStockWithMovement updates the product row and writes the audit
	// movement in one transaction.
	AdjustStockWithMovement(ctx context.Context, p *model.Product, m *model.StockMovement) error
}
