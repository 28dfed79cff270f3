package service

import (
	"errors"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/sanitize"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrVariantNotFound  = errors.New("variant not found")
)

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortName      ProductSort = "name"
)

type ProductListOptions struct {
	CategoryID      *uint
	Gender          *model.ProductGender
	OnSale          *bool
	Search          string
	Sort            ProductSort
	SortAscending   bool
	Limit           int
	Offset          int
	IncludeVariants bool
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductsByIDs(ids []uint) ([]model.Product, error)
	GetSaleProducts() []model.Product
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
	AddVariant(productID uint, variant *model.ProductVariant) error
	UpdateVariant(variant *model.ProductVariant) error
	DeleteVariant(id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	categoryRepo repository.CategoryRepository
	codeService  CodeService
}

func NewProductService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	categoryRepo repository.CategoryRepository,
	codeService CodeService,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		categoryRepo: categoryRepo,
		codeService:  codeService,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category_id": opts.CategoryID,
		"gender":      opts.Gender,
		"on_sale":     opts.OnSale,
		"search":      opts.Search,
		"sort":        opts.Sort,
		"limit":       opts.Limit,
		"offset":      opts.Offset,
	})

	filter := repository.ProductFilter{
		CategoryID:      opts.CategoryID,
		Gender:          opts.Gender,
		OnSale:          opts.OnSale,
		SortAscending:   opts.SortAscending,
		Limit:           opts.Limit,
		Offset:          opts.Offset,
		IncludeVariants: opts.IncludeVariants,
	}

	if opts.Search != "" {
		tokens, err := sanitize.SearchTokens(opts.Search)
		if err != nil {
			return nil, err
		}
		filter.SearchTokens = tokens
	}

	switch opts.Sort {
	case ProductSortPrice:
		filter.SortBy = repository.ProductSortPrice
	case ProductSortName:
		filter.SortBy = repository.ProductSortName
	case ProductSortCreatedAt:
		fallthrough
	default:
		filter.SortBy = repository.ProductSortCreatedAt
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// Codes are assigned on first read so imported rows pick one up the
	// first time the storefront shows them
	if err := s.ensureCodes(product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) GetProductsByIDs(ids []uint) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	return s.productRepo.FindByIDs(ids)
}

// GetSaleProducts never fails: any query error is logged and the storefront
// shows an empty sale section instead of an error page.
func (s *productService) GetSaleProducts() []model.Product {
	products, err := s.productRepo.FindOnSale()
	if err != nil {
		logger.Error("Failed to load sale products, returning empty result", err)
		return []model.Product{}
	}
	if products == nil {
		return []model.Product{}
	}
	return products
}

func (s *productService) CreateProduct(product *model.Product) error {
	if _, err := s.categoryRepo.FindByID(product.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if err := s.productRepo.Create(product); err != nil {
		return err
	}

	return s.ensureCodes(product)
}

func (s *productService) UpdateProduct(product *model.Product) error {
	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	// Codes are immutable once assigned
	product.Code = existing.Code

	return s.productRepo.Update(product)
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *productService) AddVariant(productID uint, variant *model.ProductVariant) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	code, err := s.codeService.GenerateVariantCode(variant.SizeOrAge, variant.Color)
	if err != nil {
		return err
	}
	variant.ProductID = productID
	variant.Code = code

	return s.variantRepo.Create(variant)
}

func (s *productService) UpdateVariant(variant *model.ProductVariant) error {
	existing, err := s.variantRepo.FindByID(variant.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}

	variant.ProductID = existing.ProductID

	// Re-key the code when size or color changes
	if existing.SizeOrAge != variant.SizeOrAge || existing.Color != variant.Color {
		code, err := s.codeService.GenerateVariantCode(variant.SizeOrAge, variant.Color)
		if err != nil {
			return err
		}
		variant.Code = code
	} else {
		variant.Code = existing.Code
	}

	return s.variantRepo.Update(variant)
}

func (s *productService) DeleteVariant(id uint) error {
	if _, err := s.variantRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}
	return s.variantRepo.Delete(id)
}

// ensureCodes assigns the product code and any missing variant codes
func (s *productService) ensureCodes(product *model.Product) error {
	if product.Code == nil {
		code, err := s.codeService.GenerateProductCode()
		if err != nil {
			return err
		}
		product.Code = &code
		if err := s.productRepo.Update(product); err != nil {
			return err
		}
	}

	for i := range product.Variants {
		v := &product.Variants[i]
		if v.Code != "" {
			continue
		}
		code, err := s.codeService.GenerateVariantCode(v.SizeOrAge, v.Color)
		if err != nil {
			return err
		}
		v.Code = code
		if err := s.variantRepo.Update(v); err != nil {
			return err
		}
	}

	return nil
}
