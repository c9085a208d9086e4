package staff

import (
	"context"

	"github.com/martshift/dashboard-service/internal/model"
)

type Repository interface {
	// ListByRole returns personnel with the given role, projecting only
	// name/role/status. The dashboard calls it with role = "staff".
	ListByRole(ctx context.Context, role string) ([]model.User, error)

	FindAll(ctx context.Context) ([]model.User, error)
}
