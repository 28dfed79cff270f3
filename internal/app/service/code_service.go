package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
)

var (
	ErrCodeExhausted = errors.New("code space exhausted")
)

const codeMaxAttempts = 100

// CodeService hands out the short numeric codes printed on labels and
// spoken over the phone. Product codes are 6 digits and unique across the
// catalog. Variant codes are 3 digits keyed by (size-or-age, color): the
// same combination always maps to the same code no matter which product
// asks for it.
type CodeService interface {
	GenerateProductCode() (string, error)
	GenerateVariantCode(sizeOrAge, color string) (string, error)
	GetVariantCode(sizeOrAge, color string) (*string, error)
}

type codeService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

func NewCodeService(productRepo repository.ProductRepository, variantRepo repository.VariantRepository) CodeService {
	return &codeService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// randomInRange returns a uniform random integer in [min, max]
func randomInRange(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}

func (s *codeService) GenerateProductCode() (string, error) {
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		n, err := randomInRange(100000, 999999)
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%06d", n)

		exists, err := s.productRepo.ExistsByCode(code)
		if err != nil {
			logger.Error("Failed to check product code uniqueness", err, map[string]interface{}{
				"code": code,
			})
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	logger.Error("Product code space exhausted", ErrCodeExhausted, map[string]interface{}{
		"attempts": codeMaxAttempts,
	})
	return "", ErrCodeExhausted
}

func (s *codeService) GenerateVariantCode(sizeOrAge, color string) (string, error) {
	existing, err := s.variantRepo.FindCode(sizeOrAge, color)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.Code, nil
	}

	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		n, err := randomInRange(100, 999)
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%03d", n)

		exists, err := s.variantRepo.CodeExists(code)
		if err != nil {
			return "", err
		}
		if exists {
			continue
		}

		vc := &model.VariantCode{
			SizeOrAge: sizeOrAge,
			Color:     color,
			Code:      code,
		}
		if err := s.variantRepo.CreateCode(vc); err != nil {
			// A concurrent writer may have claimed either the code or the
			// combination between our check and the insert. The unique
			// indexes catch both; re-resolve the combination and retry.
			if isUniqueViolation(err) {
				resolved, findErr := s.variantRepo.FindCode(sizeOrAge, color)
				if findErr != nil {
					return "", findErr
				}
				if resolved != nil {
					return resolved.Code, nil
				}
				continue
			}
			return "", err
		}

		return code, nil
	}

	logger.Error("Variant code space exhausted", ErrCodeExhausted, map[string]interface{}{
		"size_or_age": sizeOrAge,
		"color":       color,
	})
	return "", ErrCodeExhausted
}

// GetVariantCode is the read-only lookup. Returns nil when the combination
// has never been assigned a code.
func (s *codeService) GetVariantCode(sizeOrAge, color string) (*string, error) {
	vc, err := s.variantRepo.FindCode(sizeOrAge, color)
	if err != nil {
		return nil, err
	}
	if vc == nil {
		return nil, nil
	}
	return &vc.Code, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}
