package usecase

import (
	"fmt"
	"time"

	"github.com/martshift/dashboard-service/internal/dashboard/dto"
	"github.com/martshift/dashboard-service/internal/model"
)

// Per-item classification. The pie-chart bucket and the reorder list use the
// same two predicates but combine them differently: the bucket collapses to
// one reason per item (expiring wins), the reorder list is a plain threshold
// test. Keeping them as separate functions keeps the two from drifting apart.

type bucket int

const (
	bucketNormal bucket = iota
	bucketLow
	bucketExpiring
)

// dayStart truncates t to local midnight.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// effectiveQuantity is the sellable stock: items whose expiry date is today
// or earlier count as zero, whatever the stored quantity says. Negative
// stored quantities are clamped to zero.
func effectiveQuantity(p *model.Product, todayStart time.Time) int {
	qty := p.Stock
	if qty < 0 {
		qty = 0
	}
	if p.ExpiryDate != nil {
		exp := dayStart(p.ExpiryDate.In(todayStart.Location()))
		if !exp.After(todayStart) {
			return 0
		}
	}
	return qty
}

// effectiveMinStock substitutes the process-wide default when the stored
// threshold is missing or non-positive. A zero threshold would silently
// disable the low-stock rule, so it falls back too.
func effectiveMinStock(p *model.Product, defaultMinStock int) int {
	if p.MinStock != nil && *p.MinStock > 0 {
		return *p.MinStock
	}
	return defaultMinStock
}

// isExpiring reports whether the expiry date falls inside the warning
// window: today through cutoff (today + window days), inclusive.
func isExpiring(p *model.Product, cutoff time.Time) bool {
	return p.ExpiryDate != nil && !p.ExpiryDate.After(cutoff)
}

// isLow is the low-stock rule shared by the pie chart and the reorder list.
func isLow(effQty, effMin int) bool {
	return effQty < effMin
}

// bucketFor is the priority collapse: expiring beats low beats normal, so
// every item lands in exactly one slice.
func bucketFor(expiring, low bool) bucket {
	switch {
	case expiring:
		return bucketExpiring
	case low:
		return bucketLow
	default:
		return bucketNormal
	}
}

// buildSalesSeries buckets today's orders into one fixed slot per hour of
// the display window and sums them. Orders outside the window are dropped
// from both the series and the returned total: the headline figure is
// defined as the sum of the displayed buckets.
func buildSalesSeries(orders []model.Order, startHour, endHour int) ([]dto.SalesPoint, int64) {
	byHour := make(map[int]int64, endHour-startHour+1)
	for _, o := range orders {
		byHour[o.CreatedAt.Hour()] += o.TotalAmount
	}

	series := make([]dto.SalesPoint, 0, endHour-startHour+1)
	var total int64
	for h := startHour; h <= endHour; h++ {
		amount := byHour[h]
		series = append(series, dto.SalesPoint{
			Time:  fmt.Sprintf("%02d:00", h),
			Sales: amount,
		})
		total += amount
	}
	return series, total
}
