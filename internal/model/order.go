package model

import "time"

// Order is an immutable sales record. TotalAmount is in whole KRW.
type Order struct {
	ID          string    `db:"id" json:"id"`
	TotalAmount int64     `db:"total_amount" json:"totalAmount"`
	ItemCount   int       `db:"item_count" json:"itemCount"`
	Source      string    `db:"source" json:"source"` // pos, online
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
