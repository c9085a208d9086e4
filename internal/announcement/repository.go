package announcement

import (
	"context"

	"github.com/martshift/dashboard-service/internal/model"
)

type Repository interface {
	List(ctx context.Context) ([]model.Announcement, error)
	FindByID(ctx context.Context, id string) (*model.Announcement, error)
	Create(ctx context.Context, a *model.Announcement) error
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id string) error
}
