package repository

import (
	"context"

	"holocron/internal/models"

	"gorm.io/gorm"
)

// PlanetRepository defines persistence operations for catalog planets.
type PlanetRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Planet, error)
	List(ctx context.Context) ([]models.Planet, error)
	ExistingNames(ctx context.Context, names []string) (map[string]struct{}, error)
	Create(ctx context.Context, planet *models.Planet) error
	CreateBatch(ctx context.Context, planets []models.Planet) error
}

type planetRepository struct {
	db *gorm.DB
}

// NewPlanetRepository returns a new PlanetRepository implementation.
func NewPlanetRepository(db *gorm.DB) PlanetRepository {
	return &planetRepository{db: db}
}

func (r *planetRepository) GetByID(ctx context.Context, id uint) (*models.Planet, error) {
	var planet models.Planet
	if err := r.db.WithContext(ctx).First(&planet, id).Error; err != nil {
		return nil, lookupError(err, "Planet", id)
	}
	return &planet, nil
}

func (r *planetRepository) List(ctx context.Context) ([]models.Planet, error) {
	planets := []models.Planet{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&planets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return planets, nil
}

// ExistingNames returns the subset of names already stored. Matching is exact.
func (r *planetRepository) ExistingNames(ctx context.Context, names []string) (map[string]struct{}, error) {
	found := make(map[string]struct{})
	if len(names) == 0 {
		return found, nil
	}

	var stored []string
	if err := r.db.WithContext(ctx).Model(&models.Planet{}).
		Where("name IN ?", names).
		Distinct().
		Pluck("name", &stored).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, name := range stored {
		found[name] = struct{}{}
	}
	return found, nil
}

func (r *planetRepository) Create(ctx context.Context, planet *models.Planet) error {
	if err := r.db.WithContext(ctx).Create(planet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// CreateBatch inserts all planets in one transaction, or none of them.
func (r *planetRepository) CreateBatch(ctx context.Context, planets []models.Planet) error {
	if len(planets) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&planets).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
