package repository

import (
	"testing"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/db"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewProductRepository(testDB)

	category := &model.Category{Name: "Dresses", Slug: "dresses"}
	testDB.Create(category)

	return testDB, repo, category
}

func TestProductRepository_Create(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:          "Summer Dress",
		Description:   "Light cotton dress",
		Price:         24.99,
		Gender:        model.GenderGirl,
		CategoryID:    category.ID,
		StockQuantity: 12,
	}

	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Nil(t, product.Code)
}

func TestProductRepository_FindWithFilter_Gender(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	repo.Create(&model.Product{Name: "Summer Dress", Price: 24.99, Gender: model.GenderGirl, CategoryID: category.ID})
	repo.Create(&model.Product{Name: "Dino Tee", Price: 14.99, Gender: model.GenderBoy, CategoryID: category.ID})
	repo.Create(&model.Product{Name: "Plain Hoodie", Price: 19.99, Gender: model.GenderUnisex, CategoryID: category.ID})

	gender := model.GenderGirl
	products, err := repo.FindWithFilter(ProductFilter{Gender: &gender})
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Summer Dress", products[0].Name)
}

func TestProductRepository_FindWithFilter_SearchTokens(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	repo.Create(&model.Product{Name: "Summer Dress", Description: "Light cotton for warm days", Price: 24.99, CategoryID: category.ID})
	repo.Create(&model.Product{Name: "Winter Coat", Description: "Padded cotton coat", Price: 39.99, CategoryID: category.ID})

	// All tokens must match somewhere in name or description
	products, err := repo.FindWithFilter(ProductFilter{SearchTokens: []string{"cotton", "summer"}})
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Summer Dress", products[0].Name)

	products, err = repo.FindWithFilter(ProductFilter{SearchTokens: []string{"cotton"}})
	assert.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductRepository_FindWithFilter_LikeWildcardsAreLiteral(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	repo.Create(&model.Product{Name: "txshirt", Price: 9.99, CategoryID: category.ID})
	repo.Create(&model.Product{Name: "t_shirt classic", Price: 12.99, CategoryID: category.ID})

	// An underscore in a token is a literal character, not a
	// single-character wildcard
	tokens, err := sanitize.SearchTokens("t_shirt")
	require.NoError(t, err)

	products, err := repo.FindWithFilter(ProductFilter{SearchTokens: tokens})
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "t_shirt classic", products[0].Name)

	// Same for the percent wildcard
	products, err = repo.FindWithFilter(ProductFilter{SearchTokens: []string{"t%shirt"}})
	assert.NoError(t, err)
	assert.Empty(t, products)

	// Punctuation inside a token still matches itself
	repo.Create(&model.Product{Name: "Pajamas", Description: "For ages 2-3 years.", Price: 19.99, CategoryID: category.ID})
	tokens, err = sanitize.SearchTokens("2-3 years.")
	require.NoError(t, err)

	products, err = repo.FindWithFilter(ProductFilter{SearchTokens: tokens})
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Pajamas", products[0].Name)
}

func TestProductRepository_FindWithFilter_SortByPrice(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	repo.Create(&model.Product{Name: "Mid", Price: 20, CategoryID: category.ID})
	repo.Create(&model.Product{Name: "Cheap", Price: 10, CategoryID: category.ID})
	repo.Create(&model.Product{Name: "Expensive", Price: 30, CategoryID: category.ID})

	products, err := repo.FindWithFilter(ProductFilter{SortBy: ProductSortPrice, SortAscending: true})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Cheap", products[0].Name)
	assert.Equal(t, "Expensive", products[2].Name)
}

func TestProductRepository_FindOnSale(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	sale := 9.99
	repo.Create(&model.Product{Name: "Sale Tee", Price: 14.99, SalePrice: &sale, OnSale: true, CategoryID: category.ID})
	repo.Create(&model.Product{Name: "Full Price Tee", Price: 14.99, CategoryID: category.ID})

	products, err := repo.FindOnSale()
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Sale Tee", products[0].Name)
}

func TestProductRepository_ExistsByCode(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	code := "123456"
	repo.Create(&model.Product{Name: "Coded", Price: 14.99, Code: &code, CategoryID: category.ID})

	exists, err := repo.ExistsByCode("123456")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode("654321")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{Name: "Doomed", Price: 5, CategoryID: category.ID}
	repo.Create(product)

	err := repo.Delete(product.ID)
	assert.NoError(t, err)

	_, err = repo.FindByID(product.ID)
	assert.Error(t, err)
}
