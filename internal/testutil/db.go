// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"holocron/internal/database"
	"holocron/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

// SeedPlanets inserts planets with the given names and returns them with ids.
func SeedPlanets(t testing.TB, db *gorm.DB, names ...string) []models.Planet {
	t.Helper()
	planets := make([]models.Planet, 0, len(names))
	for _, name := range names {
		planets = append(planets, models.Planet{
			Name:       name,
			Climate:    "arid",
			Terrain:    "desert",
			Population: "200000",
		})
	}
	if len(planets) > 0 {
		if err := db.Create(&planets).Error; err != nil {
			t.Fatalf("seed planets: %v", err)
		}
	}
	return planets
}

// SeedPeople inserts people with the given names and returns them with ids.
func SeedPeople(t testing.TB, db *gorm.DB, names ...string) []models.Person {
	t.Helper()
	people := make([]models.Person, 0, len(names))
	for _, name := range names {
		people = append(people, models.Person{
			Name:      name,
			Height:    "172",
			Mass:      "77",
			HairColor: "blond",
			SkinColor: "fair",
			EyeColor:  "blue",
			BirthYear: "19BBY",
			Gender:    "male",
		})
	}
	if len(people) > 0 {
		if err := db.Create(&people).Error; err != nil {
			t.Fatalf("seed people: %v", err)
		}
	}
	return people
}

// SeedUser inserts a user with the given id.
func SeedUser(t testing.TB, db *gorm.DB, id uint, username string) models.User {
	t.Helper()
	user := models.User{ID: id, Username: username, Email: username + "@test.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
