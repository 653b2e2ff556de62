// Package service contains the business logic behind the HTTP handlers.
package service

import (
	"context"
	"log/slog"

	"holocron/internal/identity"
	"holocron/internal/middleware"
	"holocron/internal/models"
	"holocron/internal/observability"
	"holocron/internal/repository"
)

const (
	targetPlanet = "planet"
	targetPerson = "people"
)

// AddResult is returned by the add operations. Created is false when the
// favorite already existed and the stored row is returned unchanged.
type AddResult struct {
	Favorite *models.Favorite
	Created  bool
}

// FavoriteService provides favorites business logic.
type FavoriteService struct {
	identity     identity.Identity
	favoriteRepo repository.FavoriteRepository
	planetRepo   repository.PlanetRepository
	peopleRepo   repository.PeopleRepository
}

// NewFavoriteService returns a new FavoriteService.
func NewFavoriteService(
	id identity.Identity,
	favoriteRepo repository.FavoriteRepository,
	planetRepo repository.PlanetRepository,
	peopleRepo repository.PeopleRepository,
) *FavoriteService {
	return &FavoriteService{
		identity:     id,
		favoriteRepo: favoriteRepo,
		planetRepo:   planetRepo,
		peopleRepo:   peopleRepo,
	}
}

// ListFavorites returns the user's favorites in insertion order.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uint) ([]models.Favorite, error) {
	if _, err := s.identity.Materialize(ctx, userID); err != nil {
		return nil, err
	}
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	return favorites, nil
}

// AddFavoritePlanet favorites a planet for the user. Adding an existing
// favorite returns the stored row with Created set to false.
func (s *FavoriteService) AddFavoritePlanet(ctx context.Context, userID, planetID uint) (*AddResult, error) {
	return s.add(ctx, userID, targetPlanet,
		func() error {
			_, err := s.planetRepo.GetByID(ctx, planetID)
			return err
		},
		func() (*models.Favorite, error) {
			return s.favoriteRepo.FindByUserAndPlanet(ctx, userID, planetID)
		},
		func() *models.Favorite {
			return models.NewPlanetFavorite(userID, planetID)
		},
	)
}

// AddFavoritePerson favorites a person for the user.
func (s *FavoriteService) AddFavoritePerson(ctx context.Context, userID, peopleID uint) (*AddResult, error) {
	return s.add(ctx, userID, targetPerson,
		func() error {
			_, err := s.peopleRepo.GetByID(ctx, peopleID)
			return err
		},
		func() (*models.Favorite, error) {
			return s.favoriteRepo.FindByUserAndPerson(ctx, userID, peopleID)
		},
		func() *models.Favorite {
			return models.NewPeopleFavorite(userID, peopleID)
		},
	)
}

func (s *FavoriteService) add(
	ctx context.Context,
	userID uint,
	target string,
	ensureTarget func() error,
	findExisting func() (*models.Favorite, error),
	build func() *models.Favorite,
) (*AddResult, error) {
	if _, err := s.identity.Materialize(ctx, userID); err != nil {
		return nil, err
	}
	if err := ensureTarget(); err != nil {
		observability.FavoriteMutations.WithLabelValues("add", target, "not_found").Inc()
		return nil, err
	}

	existing, err := findExisting()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.FavoriteMutations.WithLabelValues("add", target, "exists").Inc()
		return &AddResult{Favorite: existing, Created: false}, nil
	}

	favorite := build()
	if err := favorite.Validate(); err != nil {
		return nil, err
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}

	observability.FavoriteMutations.WithLabelValues("add", target, "created").Inc()
	middleware.Logger.InfoContext(ctx, "Favorite added",
		slog.Uint64("user_id", uint64(userID)),
		slog.String("target", target),
		slog.Uint64("favorite_id", uint64(favorite.ID)),
	)
	return &AddResult{Favorite: favorite, Created: true}, nil
}

// RemoveFavoritePlanet deletes the user's favorite for the planet. Removing
// a favorite that does not exist is a NOT_FOUND error.
func (s *FavoriteService) RemoveFavoritePlanet(ctx context.Context, userID, planetID uint) error {
	return s.remove(ctx, userID, targetPlanet, planetID, func() (*models.Favorite, error) {
		return s.favoriteRepo.FindByUserAndPlanet(ctx, userID, planetID)
	})
}

// RemoveFavoritePerson deletes the user's favorite for the person.
func (s *FavoriteService) RemoveFavoritePerson(ctx context.Context, userID, peopleID uint) error {
	return s.remove(ctx, userID, targetPerson, peopleID, func() (*models.Favorite, error) {
		return s.favoriteRepo.FindByUserAndPerson(ctx, userID, peopleID)
	})
}

func (s *FavoriteService) remove(
	ctx context.Context,
	userID uint,
	target string,
	targetID uint,
	findExisting func() (*models.Favorite, error),
) error {
	if _, err := s.identity.Materialize(ctx, userID); err != nil {
		return err
	}

	existing, err := findExisting()
	if err != nil {
		return err
	}
	if existing == nil {
		observability.FavoriteMutations.WithLabelValues("remove", target, "not_found").Inc()
		return models.NewNotFoundError("Favorite "+target, targetID)
	}

	if err := s.favoriteRepo.Delete(ctx, existing.ID); err != nil {
		return err
	}
	observability.FavoriteMutations.WithLabelValues("remove", target, "deleted").Inc()
	return nil
}
