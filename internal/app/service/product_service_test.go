package service

import (
	"testing"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/db"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*gorm.DB, ProductService, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	codeService := NewCodeService(productRepo, variantRepo)

	svc := NewProductService(productRepo, variantRepo, categoryRepo, codeService)

	category := &model.Category{Name: "Jackets", Slug: "jackets"}
	testDB.Create(category)

	return testDB, svc, category
}

func TestProductService_CreateProduct_AssignsCode(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{Name: "Rain Jacket", Price: 29.99, CategoryID: category.ID}
	err := svc.CreateProduct(product)
	require.NoError(t, err)

	require.NotNil(t, product.Code)
	assert.Len(t, *product.Code, 6)
}

func TestProductService_CreateProduct_UnknownCategory(t *testing.T) {
	testDB, svc, _ := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	err := svc.CreateProduct(&model.Product{Name: "Orphan", Price: 10, CategoryID: 9999})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductService_GetProductByID_BackfillsCode(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	// Imported row without a code
	product := &model.Product{Name: "Imported Jacket", Price: 24.99, CategoryID: category.ID}
	testDB.Create(product)
	require.Nil(t, product.Code)

	got, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Code)

	// Code survives a second read unchanged
	again, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, *got.Code, *again.Code)
}

func TestProductService_UpdateProduct_CodeImmutable(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{Name: "Rain Jacket", Price: 29.99, CategoryID: category.ID}
	require.NoError(t, svc.CreateProduct(product))
	original := *product.Code

	rogue := "000000"
	product.Code = &rogue
	product.Price = 25.99
	require.NoError(t, svc.UpdateProduct(product))

	got, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, original, *got.Code)
	assert.Equal(t, 25.99, got.Price)
}

func TestProductService_AddVariant_SharedCodePerCombination(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	first := &model.Product{Name: "Jacket A", Price: 20, CategoryID: category.ID}
	second := &model.Product{Name: "Jacket B", Price: 25, CategoryID: category.ID}
	require.NoError(t, svc.CreateProduct(first))
	require.NoError(t, svc.CreateProduct(second))

	v1 := &model.ProductVariant{SizeOrAge: "4-5", Color: "red", StockQuantity: 5}
	require.NoError(t, svc.AddVariant(first.ID, v1))

	v2 := &model.ProductVariant{SizeOrAge: "4-5", Color: "red", StockQuantity: 3}
	require.NoError(t, svc.AddVariant(second.ID, v2))

	// Same (size, color) combination shares the code across products
	assert.Equal(t, v1.Code, v2.Code)
}

func TestProductService_ListProducts_SearchRejectsInjection(t *testing.T) {
	testDB, svc, _ := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.ListProducts(ProductListOptions{Search: "' OR 1=1 --"})
	assert.ErrorIs(t, err, sanitize.ErrSearchInvalidChars)
}

func TestProductService_GetSaleProducts_EmptyOnNoSales(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, svc.CreateProduct(&model.Product{Name: "Full Price", Price: 10, CategoryID: category.ID}))

	products := svc.GetSaleProducts()
	assert.NotNil(t, products)
	assert.Len(t, products, 0)
}
