package repository

import (
	"context"
	"errors"

	"holocron/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository defines persistence operations for favorites.
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error)
	FindByUserAndPlanet(ctx context.Context, userID, planetID uint) (*models.Favorite, error)
	FindByUserAndPerson(ctx context.Context, userID, peopleID uint) (*models.Favorite, error)
	Create(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, id uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository returns a new FavoriteRepository implementation.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// ListByUser returns the user's favorites in insertion order. Never nil.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	favorites := []models.Favorite{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return favorites, nil
}

// FindByUserAndPlanet returns nil, nil when the user has not favorited the planet.
func (r *favoriteRepository) FindByUserAndPlanet(ctx context.Context, userID, planetID uint) (*models.Favorite, error) {
	return r.findOne(ctx, "user_id = ? AND planet_id = ?", userID, planetID)
}

// FindByUserAndPerson returns nil, nil when the user has not favorited the person.
func (r *favoriteRepository) FindByUserAndPerson(ctx context.Context, userID, peopleID uint) (*models.Favorite, error) {
	return r.findOne(ctx, "user_id = ? AND people_id = ?", userID, peopleID)
}

func (r *favoriteRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := r.db.WithContext(ctx).Where(query, args...).Order("id ASC").First(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &favorite, nil
}

// Create persists the favorite. The model's save hook rejects rows that
// break the planet/person exclusive-or before any SQL runs.
func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return writeError(err)
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Favorite{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Favorite", id)
	}
	return nil
}
