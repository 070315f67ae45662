package bundles

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBundleNotFound = errors.New("bundle not found")

// BundleService serves the catalog and the best-value comparison.
type BundleService struct {
	db *gorm.DB
}

func NewBundleService(db *gorm.DB) *BundleService {
	return &BundleService{db: db}
}

// List returns all active bundles grouped by provider, cheapest first.
func (s *BundleService) List() ([]DataBundle, error) {
	var items []DataBundle
	err := s.db.Where("active = true").
		Order("provider ASC, price ASC").
		Find(&items).Error
	return items, err
}

// BestValue returns active bundles of at least minMB, cheapest per MB first.
func (s *BundleService) BestValue(minMB int) ([]DataBundle, error) {
	items, err := s.List()
	if err != nil {
		return nil, err
	}
	return RankByValue(items, minMB), nil
}

// RankByValue filters out bundles below minMB and sorts the rest by price
// per MB, ascending. Ties go to the bigger bundle.
func RankByValue(items []DataBundle, minMB int) []DataBundle {
	ranked := make([]DataBundle, 0, len(items))
	for _, b := range items {
		if b.MB >= minMB && b.MB > 0 {
			ranked = append(ranked, b)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		pi := float64(ranked[i].Price) / float64(ranked[i].MB)
		pj := float64(ranked[j].Price) / float64(ranked[j].MB)
		if pi != pj {
			return pi < pj
		}
		return ranked[i].MB > ranked[j].MB
	})
	return ranked
}

// BundleInput is an admin catalog edit.
type BundleInput struct {
	Provider string `json:"provider"`
	Name     string `json:"name"`
	MB       int    `json:"mb"`
	Price    int64  `json:"price"`
	Active   *bool  `json:"active"`
}

func validateInput(in *BundleInput) error {
	if strings.TrimSpace(in.Provider) == "" || strings.TrimSpace(in.Name) == "" {
		return errors.New("provider and name are required")
	}
	if in.MB <= 0 || in.Price <= 0 {
		return errors.New("mb and price must be positive")
	}
	return nil
}

func (s *BundleService) Create(in *BundleInput) (*DataBundle, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	bundle := &DataBundle{
		ID:       uuid.New(),
		Provider: strings.ToUpper(strings.TrimSpace(in.Provider)),
		Name:     strings.TrimSpace(in.Name),
		MB:       in.MB,
		Price:    in.Price,
		Active:   true,
	}
	if in.Active != nil {
		bundle.Active = *in.Active
	}

	if err := s.db.Create(bundle).Error; err != nil {
		return nil, err
	}
	return bundle, nil
}

func (s *BundleService) Update(id uuid.UUID, in *BundleInput) (*DataBundle, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var bundle DataBundle
	if err := s.db.First(&bundle, "id = ?", id).Error; err != nil {
		return nil, ErrBundleNotFound
	}

	bundle.Provider = strings.ToUpper(strings.TrimSpace(in.Provider))
	bundle.Name = strings.TrimSpace(in.Name)
	bundle.MB = in.MB
	bundle.Price = in.Price
	if in.Active != nil {
		bundle.Active = *in.Active
	}

	if err := s.db.Save(&bundle).Error; err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (s *BundleService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&DataBundle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBundleNotFound
	}
	return nil
}
