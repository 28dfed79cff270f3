package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/config"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/db"
	"github.com/xuri/excelize/v2"
)

// Expected sheet columns:
// name | description | price | sale_price | gender | category_slug | stock | sizes | colors
// sizes and colors are comma separated; every (size, color) pair becomes a
// variant. Codes are assigned lazily when the storefront first serves the
// product, not at import time.

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := db.Seed(); err != nil {
		log.Fatal("Failed to seed categories:", err)
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, skipped, err := readProductsFromXLSX(filePath, categoryRepo)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Products to import: %d (skipped %d rows)\n", len(products), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string, categoryRepo repository.CategoryRepository) ([]model.Product, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, 0, fmt.Errorf("no data rows found in XLSX file")
	}

	// Categories are matched by slug; cache the lookups
	categoryIDs := make(map[string]uint)

	var products []model.Product
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 7 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		priceStr := strings.TrimSpace(row[2])
		salePriceStr := strings.TrimSpace(row[3])
		genderStr := strings.ToLower(strings.TrimSpace(row[4]))
		categorySlug := strings.ToLower(strings.TrimSpace(row[5]))
		stockStr := strings.TrimSpace(row[6])

		if name == "" || priceStr == "" || categorySlug == "" {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			skipped++
			continue
		}

		categoryID, ok := categoryIDs[categorySlug]
		if !ok {
			category, err := categoryRepo.FindBySlug(categorySlug)
			if err != nil {
				fmt.Printf("Row %d: unknown category %q, skipping\n", i+1, categorySlug)
				skipped++
				continue
			}
			categoryID = category.ID
			categoryIDs[categorySlug] = categoryID
		}

		gender := model.ProductGender(genderStr)
		if gender != model.GenderBoy && gender != model.GenderGirl {
			gender = model.GenderUnisex
		}

		product := model.Product{
			Name:        name,
			Description: description,
			Price:       price,
			Gender:      gender,
			CategoryID:  categoryID,
		}

		if salePriceStr != "" {
			if salePrice, err := strconv.ParseFloat(salePriceStr, 64); err == nil && salePrice > 0 && salePrice < price {
				product.SalePrice = &salePrice
				product.OnSale = true
			}
		}

		if stock, err := strconv.Atoi(stockStr); err == nil && stock >= 0 {
			product.StockQuantity = stock
		}

		if len(row) >= 9 {
			product.Variants = buildVariants(row[7], row[8], product.StockQuantity)
		}

		products = append(products, product)
	}

	return products, skipped, nil
}

func buildVariants(sizesCol, colorsCol string, stock int) []model.ProductVariant {
	sizes := splitList(sizesCol)
	colors := splitList(colorsCol)
	if len(sizes) == 0 || len(colors) == 0 {
		return nil
	}

	perVariant := 0
	if n := len(sizes) * len(colors); n > 0 {
		perVariant = stock / n
	}

	var variants []model.ProductVariant
	for _, size := range sizes {
		for _, color := range colors {
			variants = append(variants, model.ProductVariant{
				SizeOrAge:     size,
				Color:         strings.ToLower(color),
				StockQuantity: perVariant,
			})
		}
	}
	return variants
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
