package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martshift/dashboard-service/internal/catalog/dto"
	"github.com/martshift/dashboard-service/internal/model"
	"github.com/martshift/dashboard-service/pkg/logger"
)

// fakeRepo is an in-memory Repository; cache and search are left nil so the
// usecase exercises its database-only degradation paths.
type fakeRepo struct {
	products  map[string]*model.Product
	movements []*model.StockMovement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[string]*model.Product{}}
}

func (f *fakeRepo) ListAll(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) FindAll(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	list, _ := f.ListAll(context.Background())
	return list, len(list), nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) Create(_ context.Context, p *model.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) AdjustStockWithMovement(_ context.Context, p *model.Product, m *model.StockMovement) error {
	cp := *p
	f.products[p.ID] = &cp
	f.movements = append(f.movements, m)
	return nil
}

func newTestUseCase(repo *fakeRepo) *catalogUseCase {
	return NewCatalogUseCase(repo, nil, nil, logger.NewNop()).(*catalogUseCase)
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo)

	min := 10
	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name:       "cola",
		Category:   "drinks",
		Price:      1800,
		Stock:      24,
		MinStock:   &min,
		ExpiryDate: "2024-06-30",
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	assert.Equal(t, "cola", p.Name)
	require.NotNil(t, p.Category)
	assert.Equal(t, "drinks", *p.Category)
	require.NotNil(t, p.ExpiryDate)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local), *p.ExpiryDate)

	stored, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, p.ID, stored.ID)
}

func TestCreateProduct_RequiresName(t *testing.T) {
	uc := newTestUseCase(newFakeRepo())
	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{Stock: 1})
	require.Error(t, err)
}

func TestParseExpiry(t *testing.T) {
	uc := newTestUseCase(newFakeRepo())

	assert.Nil(t, uc.parseExpiry(""))
	assert.Nil(t, uc.parseExpiry("not-a-date"))
	assert.Nil(t, uc.parseExpiry("30/06/2024"))

	got := uc.parseExpiry("2024-06-30")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local), *got)
}

func TestAdjustStock(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo)

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{Name: "ramen", Stock: 10})
	require.NoError(t, err)

	updated, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID:     p.ID,
		StockChange:   -3,
		ReferenceType: "sale",
		UserID:        "system",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)

	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	assert.Equal(t, "sale", m.MovementType)
	assert.Equal(t, -3, m.StockChange)
	assert.Equal(t, 10, m.StockBefore)
	assert.Equal(t, 7, m.StockAfter)
	assert.Nil(t, m.CreatedBy) // system actor is not attributed
}

func TestAdjustStock_InsufficientStock(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo)

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{Name: "ramen", Stock: 2})
	require.NoError(t, err)

	_, err = uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ProductID: p.ID, StockChange: -5})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The stored quantity is untouched and no movement was recorded.
	stored, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)
	assert.Empty(t, repo.movements)
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	uc := newTestUseCase(newFakeRepo())
	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ProductID: "nope", StockChange: 1})
	require.Error(t, err)
}

func TestUpdateProduct_ClearsOptionalFields(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo)

	min := 3
	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name: "milk", Category: "dairy", MinStock: &min, ExpiryDate: "2024-06-30",
	})
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:   p.ID,
		Name: "milk 1L",
	})
	require.NoError(t, err)
	assert.Equal(t, "milk 1L", updated.Name)
	assert.Nil(t, updated.Category)
	assert.Nil(t, updated.ExpiryDate)
	assert.Nil(t, updated.MinStock)
}

func TestDeleteProduct_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo)

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{Name: "gum"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))
	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))

	stored, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestListProducts_NoCacheFallsToRepo(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo)

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{Name: "cola"})
	require.NoError(t, err)
	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{Name: "ramen"})
	require.NoError(t, err)

	products, count, err := uc.ListProducts(context.Background(), &dto.ProductFilters{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, products, 2)
}
