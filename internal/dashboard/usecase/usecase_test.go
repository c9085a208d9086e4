package usecase

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martshift/dashboard-service/config"
	"github.com/martshift/dashboard-service/internal/dashboard"
	"github.com/martshift/dashboard-service/internal/model"
	"github.com/martshift/dashboard-service/pkg/i18n"
	"github.com/martshift/dashboard-service/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeCatalog struct {
	products []model.Product
	err      error
}

func (f *fakeCatalog) ListAll(_ context.Context) ([]model.Product, error) {
	return f.products, f.err
}

type fakeOrders struct {
	orders  []model.Order
	err     error
	gotFrom time.Time
}

func (f *fakeOrders) ListSince(_ context.Context, from time.Time) ([]model.Order, error) {
	f.gotFrom = from
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Order
	for _, o := range f.orders {
		if !o.CreatedAt.Before(from) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeStaff struct {
	users []model.User
	err   error
}

func (f *fakeStaff) ListByRole(_ context.Context, role string) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

var testCfg = config.DashboardConfig{
	DefaultMinStock:    5,
	SalesStartHour:     6,
	SalesEndHour:       22,
	ExpiringWindowDays: 3,
	StaffShiftLabel:    "09:00 - 18:00",
}

// testNow is a fixed Monday afternoon so day boundaries are stable.
var testNow = time.Date(2024, 1, 15, 14, 30, 0, 0, time.Local)

func newTestUseCase(catalog dashboard.CatalogReader, orders dashboard.OrderReader, staff dashboard.StaffReader) *dashboardUseCase {
	uc := NewDashboardUseCase(catalog, orders, staff, testCfg, nil, logger.NewNop()).(*dashboardUseCase)
	uc.now = func() time.Time { return testNow }
	return uc
}

func intPtr(v int) *int          { return &v }
func strPtr(s string) *string    { return &s }
func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func orderAt(hour, minute int, amount int64) model.Order {
	return model.Order{
		ID:          "o",
		TotalAmount: amount,
		CreatedAt:   time.Date(2024, 1, 15, hour, minute, 0, 0, time.Local),
	}
}

func product(name string, stock int, minStock *int, expiry *time.Time) model.Product {
	return model.Product{
		BaseModel:  model.BaseModel{ID: "p-" + name},
		Name:       name,
		Stock:      stock,
		MinStock:   minStock,
		ExpiryDate: expiry,
	}
}

func TestSummary_SalesSeriesShape(t *testing.T) {
	orders := &fakeOrders{orders: []model.Order{
		orderAt(9, 0, 1000),
		orderAt(9, 45, 500),
		orderAt(23, 15, 9999), // outside the display window
	}}
	uc := newTestUseCase(&fakeCatalog{}, orders, &fakeStaff{})

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.SalesData, 17)
	assert.Equal(t, "06:00", summary.SalesData[0].Time)
	assert.Equal(t, "22:00", summary.SalesData[16].Time)

	var total int64
	for _, point := range summary.SalesData {
		assert.GreaterOrEqual(t, point.Sales, int64(0))
		total += point.Sales
		if point.Time == "09:00" {
			assert.Equal(t, int64(1500), point.Sales)
		} else {
			assert.Equal(t, int64(0), point.Sales)
		}
	}

	// The headline figure is the sum of the displayed buckets, so the
	// 23:00 order is excluded from it as well.
	assert.Equal(t, int64(1500), summary.Stats.TodaySales)
	assert.Equal(t, total, summary.Stats.TodaySales)

	// Readers are queried from today's local midnight.
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), orders.gotFrom)
}

func TestSummary_InventoryPartitionIsExhaustive(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{
		product("cola", 50, intPtr(10), nil),                       // normal
		product("ramen", 2, intPtr(10), nil),                       // low
		product("milk", 30, intPtr(5), datePtr(2024, time.January, 17)), // expiring
		product("kimbap", 1, intPtr(5), datePtr(2024, time.January, 16)), // expiring AND low
		product("chips", 3, nil, nil),                              // low via default threshold
	}}
	uc := newTestUseCase(catalog, &fakeOrders{}, &fakeStaff{})

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.InventoryData, 3)
	normal, low, expiring := summary.InventoryData[0], summary.InventoryData[1], summary.InventoryData[2]

	// Every item lands in exactly one slice.
	assert.Equal(t, len(catalog.products), normal.Value+low.Value+expiring.Value)
	assert.Equal(t, 1, normal.Value)
	assert.Equal(t, 2, low.Value)
	assert.Equal(t, 2, expiring.Value) // kimbap collapses to expiring, not low

	assert.Equal(t, "정상", normal.Name)
	assert.Equal(t, "부족", low.Name)
	assert.Equal(t, "임박", expiring.Name)

	// The reorder list ignores the collapse: kimbap is low too.
	assert.Equal(t, len(summary.LowStockItems), summary.Stats.PendingOrders)
	require.Len(t, summary.LowStockItems, 3)
	names := []string{}
	for _, item := range summary.LowStockItems {
		names = append(names, item.Name)
		assert.Less(t, item.Stock, item.MinStock)
	}
	assert.Equal(t, []string{"ramen", "kimbap", "chips"}, names)
}

func TestSummary_DefaultThresholdApplies(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{
		product("gum", 4, nil, nil), // no threshold, qty 4 < default 5
	}}
	uc := newTestUseCase(catalog, &fakeOrders{}, &fakeStaff{})

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.LowStockItems, 1)
	assert.Equal(t, 5, summary.LowStockItems[0].MinStock)
	assert.Equal(t, 1, summary.InventoryData[1].Value)
}

func TestSummary_NonPositiveThresholdFallsBack(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{
		product("water", 100, intPtr(-1), nil),
	}}
	uc := newTestUseCase(catalog, &fakeOrders{}, &fakeStaff{})

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	// -1 falls back to 5; 100 >= 5 so the item is healthy.
	assert.Empty(t, summary.LowStockItems)
	assert.Equal(t, 1, summary.InventoryData[0].Value)
}

func TestSummary_ExpiryTodayForcesZeroStock(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{
		product("dosirak", 10, intPtr(5), datePtr(2024, time.January, 15)), // expires today
	}}
	uc := newTestUseCase(catalog, &fakeOrders{}, &fakeStaff{})

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	// Dead stock contributes nothing to the total.
	assert.Equal(t, 0, summary.Stats.TotalInventory)

	// Priority collapse: the pie slice is "expiring", not "low".
	assert.Equal(t, 1, summary.InventoryData[2].Value)
	assert.Equal(t, 0, summary.InventoryData[1].Value)

	// But the reorder list still flags it: effective 0 < 5.
	require.Len(t, summary.LowStockItems, 1)
	assert.Equal(t, 0, summary.LowStockItems[0].Stock)
	assert.Equal(t, 5, summary.LowStockItems[0].MinStock)
}

func TestSummary_ExpiredStockExcludedFromTotal(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{
		product("old-bread", 40, intPtr(1), datePtr(2024, time.January, 10)),
		product("cola", 7, intPtr(1), nil),
	}}
	uc := newTestUseCase(catalog, &fakeOrders{}, &fakeStaff{})

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, summary.Stats.TotalInventory)
}

func TestSummary_StaffSnapshot(t *testing.T) {
	staff := &fakeStaff{users: []model.User{
		{BaseModel: model.BaseModel{ID: "u1"}, Name: "김민수", Role: model.RoleStaff, Status: model.StatusActive},
		{BaseModel: model.BaseModel{ID: "u2"}, Name: "이서연", Role: model.RoleStaff, Status: "off"},
		{BaseModel: model.BaseModel{ID: "u3"}, Name: "사장님", Role: model.RoleOwner, Status: model.StatusActive},
	}}
	uc := newTestUseCase(&fakeCatalog{}, &fakeOrders{}, staff)

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	// The owner record is excluded entirely.
	assert.Equal(t, 2, summary.Stats.StaffCount)
	require.Len(t, summary.TodayStaff, 2)

	assert.Equal(t, "근무중", summary.TodayStaff[0].Status)
	assert.Equal(t, "대기", summary.TodayStaff[1].Status)
	assert.Equal(t, "09:00 - 18:00", summary.TodayStaff[0].Shift)
}

func TestSummary_MissingNamesFallBack(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{
		product("", 0, intPtr(3), nil),
	}}
	staff := &fakeStaff{users: []model.User{
		{BaseModel: model.BaseModel{ID: "u1"}, Role: model.RoleStaff, Status: model.StatusActive},
	}}
	uc := newTestUseCase(catalog, &fakeOrders{}, staff)

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.LowStockItems, 1)
	assert.Equal(t, "이름 없음", summary.LowStockItems[0].Name)
	require.Len(t, summary.TodayStaff, 1)
	assert.Equal(t, "직원", summary.TodayStaff[0].Name)
}

func TestSummary_ReaderFailureAbortsWholeBuild(t *testing.T) {
	boom := errors.New("connection refused")

	cases := []struct {
		name    string
		catalog dashboard.CatalogReader
		orders  dashboard.OrderReader
		staff   dashboard.StaffReader
	}{
		{"catalog fails", &fakeCatalog{err: boom}, &fakeOrders{}, &fakeStaff{}},
		{"orders fail", &fakeCatalog{}, &fakeOrders{err: boom}, &fakeStaff{}},
		{"staff fails", &fakeCatalog{}, &fakeOrders{}, &fakeStaff{err: boom}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newTestUseCase(tc.catalog, tc.orders, tc.staff)
			summary, err := uc.Summary(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Nil(t, summary)
		})
	}
}

func TestSummary_Idempotent(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{
		product("cola", 50, intPtr(10), nil),
		product("ramen", 2, intPtr(10), datePtr(2024, time.January, 16)),
	}}
	orders := &fakeOrders{orders: []model.Order{orderAt(10, 5, 2500)}}
	staff := &fakeStaff{users: []model.User{
		{BaseModel: model.BaseModel{ID: "u1"}, Name: "김민수", Role: model.RoleStaff, Status: model.StatusActive},
	}}
	uc := newTestUseCase(catalog, orders, staff)

	first, err := uc.Summary(context.Background())
	require.NoError(t, err)
	second, err := uc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSummary_EmptyInputs(t *testing.T) {
	uc := newTestUseCase(&fakeCatalog{}, &fakeOrders{}, &fakeStaff{})

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.Stats.TodaySales)
	assert.Equal(t, 0, summary.Stats.TotalInventory)
	assert.Equal(t, 0, summary.Stats.PendingOrders)
	assert.Equal(t, 0, summary.Stats.StaffCount)
	require.Len(t, summary.SalesData, 17)
	assert.NotNil(t, summary.LowStockItems)
	assert.Empty(t, summary.TodayStaff)
}

func TestSummary_CategoryPassthrough(t *testing.T) {
	p := product("ramen", 1, intPtr(5), nil)
	p.Category = strPtr("noodles")
	catalog := &fakeCatalog{products: []model.Product{p}}
	uc := newTestUseCase(catalog, &fakeOrders{}, &fakeStaff{})

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.LowStockItems, 1)
	require.NotNil(t, summary.LowStockItems[0].Category)
	assert.Equal(t, "noodles", *summary.LowStockItems[0].Category)
}
