package service

import (
	"context"

	"holocron/internal/models"
	"holocron/internal/repository"
)

// CatalogService serves read access to people, planets and users.
type CatalogService struct {
	peopleRepo repository.PeopleRepository
	planetRepo repository.PlanetRepository
	userRepo   repository.UserRepository
}

// NewCatalogService returns a new CatalogService.
func NewCatalogService(
	peopleRepo repository.PeopleRepository,
	planetRepo repository.PlanetRepository,
	userRepo repository.UserRepository,
) *CatalogService {
	return &CatalogService{
		peopleRepo: peopleRepo,
		planetRepo: planetRepo,
		userRepo:   userRepo,
	}
}

func (s *CatalogService) ListPeople(ctx context.Context) ([]models.Person, error) {
	return s.peopleRepo.List(ctx)
}

func (s *CatalogService) GetPerson(ctx context.Context, id uint) (*models.Person, error) {
	return s.peopleRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListPlanets(ctx context.Context) ([]models.Planet, error) {
	return s.planetRepo.List(ctx)
}

func (s *CatalogService) GetPlanet(ctx context.Context, id uint) (*models.Planet, error) {
	return s.planetRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes a user together with all of its favorites.
func (s *CatalogService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}
