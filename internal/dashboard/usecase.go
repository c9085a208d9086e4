package dashboard

import (
	"context"

	"github.com/martshift/dashboard-service/internal/dashboard/dto"
)

type UseCase interface {
	// Summary builds the whole dashboard from one consistent snapshot.
	// It either returns a complete summary or an error, never a partial one.
	Summary(ctx context.Context) (*dto.DashboardSummary, error)
}
