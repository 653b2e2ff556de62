package seed

import (
	"context"
	"fmt"
	"log/slog"

	"holocron/internal/middleware"
	"holocron/internal/models"

	"gorm.io/gorm"
)

// Seeder writes fixed and fake catalog rows.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder returns a Seeder using a randomly seeded Factory.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(0)}
}

// NewSeederWithFactory returns a Seeder using the given Factory.
func NewSeederWithFactory(db *gorm.DB, factory *Factory) *Seeder {
	return &Seeder{db: db, factory: factory}
}

// TestData inserts one fixed planet and one fixed person in one transaction.
// Every call inserts a fresh pair.
func (s *Seeder) TestData(ctx context.Context) (*models.Planet, *models.Person, error) {
	planet := TestPlanet()
	person := TestPerson()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&planet).Error; err != nil {
			return err
		}
		return tx.Create(&person).Error
	})
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}
	return &planet, &person, nil
}

// DemoCatalog adds up to n fake planets and n fake people whose names are not
// already stored. It returns how many of each were created.
func (s *Seeder) DemoCatalog(ctx context.Context, n int) (planets int, people int, err error) {
	if n <= 0 {
		return 0, 0, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		newPlanets := make([]models.Planet, 0, n)
		taken, err := storedNames(tx, &models.Planet{})
		if err != nil {
			return err
		}
		for attempts := 0; len(newPlanets) < n && attempts < n*10; attempts++ {
			p := s.factory.BuildPlanet()
			if _, dup := taken[p.Name]; dup {
				continue
			}
			taken[p.Name] = struct{}{}
			newPlanets = append(newPlanets, p)
		}

		newPeople := make([]models.Person, 0, n)
		taken, err = storedNames(tx, &models.Person{})
		if err != nil {
			return err
		}
		for attempts := 0; len(newPeople) < n && attempts < n*10; attempts++ {
			p := s.factory.BuildPerson()
			if _, dup := taken[p.Name]; dup {
				continue
			}
			taken[p.Name] = struct{}{}
			newPeople = append(newPeople, p)
		}

		if len(newPlanets) > 0 {
			if err := tx.CreateInBatches(&newPlanets, 100).Error; err != nil {
				return fmt.Errorf("create planets: %w", err)
			}
		}
		if len(newPeople) > 0 {
			if err := tx.CreateInBatches(&newPeople, 100).Error; err != nil {
				return fmt.Errorf("create people: %w", err)
			}
		}
		planets, people = len(newPlanets), len(newPeople)
		return nil
	})
	if err != nil {
		return 0, 0, models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "Demo catalog seeded",
		slog.Int("planets", planets),
		slog.Int("people", people),
	)
	return planets, people, nil
}

func storedNames(tx *gorm.DB, model interface{}) (map[string]struct{}, error) {
	var names []string
	if err := tx.Model(model).Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set, nil
}

// ClearCatalog removes all favorites, people and planets. Users are kept.
func (s *Seeder) ClearCatalog(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Favorite{}, &models.Person{}, &models.Planet{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
