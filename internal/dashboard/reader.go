package dashboard

import (
	"context"
	"time"

	"github.com/martshift/dashboard-service/internal/model"
)

// The aggregation engine reads through these three narrow interfaces; the
// catalog, order and staff repositories satisfy them. Each request fetches
// one immutable snapshot through them before any classification runs.

type CatalogReader interface {
	ListAll(ctx context.Context) ([]model.Product, error)
}

type OrderReader interface {
	ListSince(ctx context.Context, from time.Time) ([]model.Order, error)
}

type StaffReader interface {
	ListByRole(ctx context.Context, role string) ([]model.User, error)
}
