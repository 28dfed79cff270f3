package service

import (
	"regexp"
	"testing"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCodeTest(t *testing.T) (*gorm.DB, CodeService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	return testDB, NewCodeService(productRepo, variantRepo)
}

func TestCodeService_GenerateProductCode_Format(t *testing.T) {
	testDB, svc := setupCodeTest(t)
	defer db.CleanupTestDB(testDB)

	sixDigits := regexp.MustCompile(`^[1-9][0-9]{5}$`)

	for i := 0; i < 20; i++ {
		code, err := svc.GenerateProductCode()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
	}
}

func TestCodeService_GenerateProductCode_AvoidsExisting(t *testing.T) {
	testDB, svc := setupCodeTest(t)
	defer db.CleanupTestDB(testDB)

	category := &model.Category{Name: "T-Shirts", Slug: "t-shirts"}
	testDB.Create(category)

	taken := "123456"
	testDB.Create(&model.Product{Name: "Taken", Price: 10, Code: &taken, CategoryID: category.ID})

	// Regenerating many times must never collide with the assigned code
	for i := 0; i < 50; i++ {
		code, err := svc.GenerateProductCode()
		require.NoError(t, err)
		assert.NotEqual(t, taken, code)
	}
}

func TestCodeService_GenerateVariantCode_Format(t *testing.T) {
	testDB, svc := setupCodeTest(t)
	defer db.CleanupTestDB(testDB)

	code, err := svc.GenerateVariantCode("4-5", "green")
	require.NoError(t, err)
	assert.Regexp(t, `^[1-9][0-9]{2}$`, code)
}

func TestCodeService_GenerateVariantCode_IdempotentPerCombination(t *testing.T) {
	testDB, svc := setupCodeTest(t)
	defer db.CleanupTestDB(testDB)

	first, err := svc.GenerateVariantCode("4-5", "green")
	require.NoError(t, err)

	// Same combination, same code, even across products
	second, err := svc.GenerateVariantCode("4-5", "green")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Different combination gets its own code
	other, err := svc.GenerateVariantCode("4-5", "blue")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestCodeService_GetVariantCode(t *testing.T) {
	testDB, svc := setupCodeTest(t)
	defer db.CleanupTestDB(testDB)

	// Lookup never assigns
	code, err := svc.GetVariantCode("6-7", "red")
	require.NoError(t, err)
	assert.Nil(t, code)

	assigned, err := svc.GenerateVariantCode("6-7", "red")
	require.NoError(t, err)

	code, err = svc.GetVariantCode("6-7", "red")
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Equal(t, assigned, *code)
}
