package dto

// DashboardSummary is the full payload behind GET /api/dashboard/summary.
// Field names match what the store frontend charts consume.
type DashboardSummary struct {
	Stats         Stats            `json:"stats"`
	SalesData     []SalesPoint     `json:"salesData"`
	InventoryData []InventorySlice `json:"inventoryData"`
	TodayStaff    []StaffEntry     `json:"todayStaff"`
	LowStockItems []LowStockItem   `json:"lowStockItems"`
}

type Stats struct {
	TodaySales     int64 `json:"todaySales"`
	TotalInventory int   `json:"totalInventory"`
	PendingOrders  int   `json:"pendingOrders"`
	StaffCount     int   `json:"staffCount"`
}

// SalesPoint is one hourly bucket of the sales line chart.
type SalesPoint struct {
	Time  string `json:"time"` // "06:00" .. "22:00"
	Sales int64  `json:"sales"`
}

// InventorySlice is one segment of the inventory pie chart.
type InventorySlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type StaffEntry struct {
	Name   string `json:"name"`
	Shift  string `json:"shift"`
	Status string `json:"status"`
}

// LowStockItem is one row of the reorder list. Stock and MinStock are the
// effective values the low-stock rule compared, not the raw stored ones.
type LowStockItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"minStock"`
	Category *string `json:"category"`
}
