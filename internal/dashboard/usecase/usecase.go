package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/martshift/dashboard-service/config"
	"github.com/martshift/dashboard-service/internal/dashboard"
	"github.com/martshift/dashboard-service/internal/dashboard/dto"
	"github.com/martshift/dashboard-service/internal/metrics"
	"github.com/martshift/dashboard-service/internal/model"
	"github.com/martshift/dashboard-service/pkg/i18n"
	"github.com/martshift/dashboard-service/pkg/logger"
)

// snapshot is one request's immutable view of the three readers. All
// classification below runs as pure functions of it.
type snapshot struct {
	products []model.Product
	orders   []model.Order
	staff    []model.User
	now      time.Time
}

type dashboardUseCase struct {
	catalog dashboard.CatalogReader
	orders  dashboard.OrderReader
	staff   dashboard.StaffReader
	cfg     config.DashboardConfig
	metrics *metrics.Metrics
	logger  logger.ZapLogger
	now     func() time.Time
}

func NewDashboardUseCase(
	catalog dashboard.CatalogReader,
	orders dashboard.OrderReader,
	staff dashboard.StaffReader,
	cfg config.DashboardConfig,
	m *metrics.Metrics,
	log logger.ZapLogger,
) dashboard.UseCase {
	return &dashboardUseCase{
		catalog: catalog,
		orders:  orders,
		staff:   staff,
		cfg:     cfg,
		metrics: m,
		logger:  log,
		now:     time.Now,
	}
}

func (uc *dashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	start := time.Now()

	snap, err := uc.fetchSnapshot(ctx)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.SummaryFailures.Inc()
		}
		return nil, err
	}

	summary := uc.build(snap)

	if uc.metrics != nil {
		uc.metrics.SummaryBuilds.Inc()
		uc.metrics.SummaryDuration.Observe(time.Since(start).Seconds())
		uc.metrics.LowStockItems.Set(float64(summary.Stats.PendingOrders))
	}
	return summary, nil
}

// fetchSnapshot issues the three reader calls concurrently. Any failure
// aborts the whole build: a summary missing a section would be misleading.
func (uc *dashboardUseCase) fetchSnapshot(ctx context.Context) (*snapshot, error) {
	now := uc.now()
	todayStart := dayStart(now)

	var snap snapshot
	snap.now = now

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := uc.catalog.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("catalog read: %w", err)
		}
		snap.products = products
		return nil
	})
	g.Go(func() error {
		orders, err := uc.orders.ListSince(ctx, todayStart)
		if err != nil {
			return fmt.Errorf("order read: %w", err)
		}
		snap.orders = orders
		return nil
	})
	g.Go(func() error {
		staff, err := uc.staff.ListByRole(ctx, model.RoleStaff)
		if err != nil {
			return fmt.Errorf("staff read: %w", err)
		}
		snap.staff = staff
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Pie slice colors are the frontend's chart theme tokens.
const (
	colorNormal   = "hsl(var(--success))"
	colorLow      = "hsl(var(--warning))"
	colorExpiring = "hsl(var(--destructive))"
)

func (uc *dashboardUseCase) build(snap *snapshot) *dto.DashboardSummary {
	todayStart := dayStart(snap.now)
	expiringCutoff := snap.now.AddDate(0, 0, uc.cfg.ExpiringWindowDays)

	salesData, todaySales := buildSalesSeries(snap.orders, uc.cfg.SalesStartHour, uc.cfg.SalesEndHour)

	var normal, low, expiring, totalInventory int
	lowStockItems := []dto.LowStockItem{}

	for i := range snap.products {
		p := &snap.products[i]
		effQty := effectiveQuantity(p, todayStart)
		effMin := effectiveMinStock(p, uc.cfg.DefaultMinStock)
		totalInventory += effQty

		itemLow := isLow(effQty, effMin)
		itemExpiring := isExpiring(p, expiringCutoff)

		// The reorder list is a pure threshold test, independent of the
		// pie chart's priority collapse.
		if itemLow {
			name := p.Name
			if name == "" {
				name = i18n.T("product.default_name")
			}
			lowStockItems = append(lowStockItems, dto.LowStockItem{
				ID:       p.ID,
				Name:     name,
				Stock:    effQty,
				MinStock: effMin,
				Category: p.Category,
			})
		}

		switch bucketFor(itemExpiring, itemLow) {
		case bucketExpiring:
			expiring++
		case bucketLow:
			low++
		default:
			normal++
		}
	}

	todayStaff := make([]dto.StaffEntry, 0, len(snap.staff))
	for _, s := range snap.staff {
		name := s.Name
		if name == "" {
			name = i18n.T("staff.default_name")
		}
		status := i18n.T("staff.standby")
		if s.Status == model.StatusActive {
			status = i18n.T("staff.on_duty")
		}
		todayStaff = append(todayStaff, dto.StaffEntry{
			Name:   name,
			Shift:  uc.cfg.StaffShiftLabel, // placeholder until shift scheduling lands
			Status: status,
		})
	}

	return &dto.DashboardSummary{
		Stats: dto.Stats{
			TodaySales:     todaySales,
			TotalInventory: totalInventory,
			PendingOrders:  len(lowStockItems),
			StaffCount:     len(snap.staff),
		},
		SalesData: salesData,
		InventoryData: []dto.InventorySlice{
			{Name: i18n.T("inventory.normal"), Value: normal, Color: colorNormal},
			{Name: i18n.T("inventory.low"), Value: low, Color: colorLow},
			{Name: i18n.T("inventory.expiring"), Value: expiring, Color: colorExpiring},
		},
		TodayStaff:    todayStaff,
		LowStockItems: lowStockItems,
	}
}
