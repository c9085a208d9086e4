package dto

type CreateProductInput struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Price      int64  `json:"price"`
	Stock      int    `json:"stock"`
	MinStock   *int   `json:"minStock"`
	ExpiryDate string `json:"expiryDate"` // YYYY-MM-DD, empty for none
}

type UpdateProductInput struct {
	ID         string `json:"-"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Price      int64  `json:"price"`
	Stock      int    `json:"stock"`
	MinStock   *int   `json:"minStock"`
	ExpiryDate string `json:"expiryDate"`
}

type AdjustStockInput struct {
	ProductID     string `json:"-"`
	StockChange   int    `json:"stockChange"`
	Reason        string `json:"reason"`
	ReferenceID   string `json:"referenceId"`
	ReferenceType string `json:"referenceType"` // manual, sale, restock
	UserID        string `json:"-"`
}
