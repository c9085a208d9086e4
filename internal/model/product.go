package model

import "time"

// Product is a catalog item. MinStock and ExpiryDate are nullable: a missing
// MinStock means the dashboard's default threshold applies, a missing
// ExpiryDate means the item never expires.
type Product struct {
	BaseModel
	Name       string     `db:"name" json:"name"`
	Category   *string    `db:"category" json:"category"`
	Price      int64      `db:"price" json:"price"`
	Stock      int        `db:"stock" json:"stock"`
	MinStock   *int       `db:"min_stock" json:"minStock"`
	ExpiryDate *time.Time `db:"expiry_date" json:"expiryDate"`
}

// StockMovement is the audit row written alongside every stock adjustment.
type StockMovement struct {
	ID           string    `db:"id" json:"id"`
	ProductID    string    `db:"product_id" json:"productId"`
	MovementType string    `db:"movement_type" json:"movementType"` // adjustment, sale, restock
	StockChange  int       `db:"stock_change" json:"stockChange"`
	StockBefore  int       `db:"stock_before" json:"stockBefore"`
	StockAfter   int       `db:"stock_after" json:"stockAfter"`
	ReferenceID  *string   `db:"reference_id" json:"referenceId"`
	Notes        string    `db:"notes" json:"notes"`
	CreatedBy    *string   `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
