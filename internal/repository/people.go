package repository

import (
	"context"

	"holocron/internal/models"

	"gorm.io/gorm"
)

// PeopleRepository defines persistence operations for catalog people.
type PeopleRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Person, error)
	List(ctx context.Context) ([]models.Person, error)
	ExistingNames(ctx context.Context, names []string) (map[string]struct{}, error)
	Create(ctx context.Context, person *models.Person) error
	CreateBatch(ctx context.Context, people []models.Person) error
}

type peopleRepository struct {
	db *gorm.DB
}

// NewPeopleRepository returns a new PeopleRepository implementation.
func NewPeopleRepository(db *gorm.DB) PeopleRepository {
	return &peopleRepository{db: db}
}

func (r *peopleRepository) GetByID(ctx context.Context, id uint) (*models.Person, error) {
	var person models.Person
	if err := r.db.WithContext(ctx).First(&person, id).Error; err != nil {
		return nil, lookupError(err, "Person", id)
	}
	return &person, nil
}

func (r *peopleRepository) List(ctx context.Context) ([]models.Person, error) {
	people := []models.Person{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&people).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return people, nil
}

func (r *peopleRepository) ExistingNames(ctx context.Context, names []string) (map[string]struct{}, error) {
	found := make(map[string]struct{})
	if len(names) == 0 {
		return found, nil
	}

	var stored []string
	if err := r.db.WithContext(ctx).Model(&models.Person{}).
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

func (r *peopleRepository) Create(ctx context.Context, person *models.Person) error {
	if err := r.db.WithContext(ctx).Create(person).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *peopleRepository) CreateBatch(ctx context.Context, people []models.Person) error {
	if len(people) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&people).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
