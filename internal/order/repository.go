package order

import (
	"context"
	"time"

	"github.com/martshift/dashboard-service/internal/model"
)

type Repository interface {
	// ListSince returns orders created at or after from, oldest first. The
	// dashboard calls it with today's local midnight.
	ListSince(ctx context.Context, from time.Time) ([]model.Order, error)

	Create(ctx context.Context, o *model.Order) error
	ListRange(ctx context.Context, from, to time.Time, page, pageSize int) ([]model.Order, int, error)
}
