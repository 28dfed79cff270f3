package repository

import (
	"errors"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(variant *model.ProductVariant) error
	FindByID(id uint) (*model.ProductVariant, error)
	FindByProductID(productID uint) ([]model.ProductVariant, error)
	FindByProductAndKey(productID uint, sizeOrAge, color string) (*model.ProductVariant, error)
	Update(variant *model.ProductVariant) error
	Delete(id uint) error

	// Code mapping operations. A code belongs to a (size-or-age, color)
	// combination, not to a single variant row.
	FindCode(sizeOrAge, color string) (*model.VariantCode, error)
	CodeExists(code string) (bool, error)
	CreateCode(vc *model.VariantCode) error
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) Create(variant *model.ProductVariant) error {
	return r.db.Create(variant).Error
}

func (r *variantRepository) FindByID(id uint) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindByProductID(productID uint) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.db.Where("product_id = ?", productID).Find(&variants).Error
	return variants, err
}

func (r *variantRepository) FindByProductAndKey(productID uint, sizeOrAge, color string) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	err := r.db.Where("product_id = ? AND size_or_age = ? AND color = ?", productID, sizeOrAge, color).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) Update(variant *model.ProductVariant) error {
	return r.db.Save(variant).Error
}

func (r *variantRepository) Delete(id uint) error {
	return r.db.Delete(&model.ProductVariant{}, id).Error
}

// FindCode returns (nil, nil) when the combination has no code yet
func (r *variantRepository) FindCode(sizeOrAge, color string) (*model.VariantCode, error) {
	var vc model.VariantCode
	err := r.db.Where("size_or_age = ? AND color = ?", sizeOrAge, color).First(&vc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vc, nil
}

func (r *variantRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.VariantCode{}).Where("code = ?", code).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *variantRepository) CreateCode(vc *model.VariantCode) error {
	return r.db.Create(vc).Error
}
