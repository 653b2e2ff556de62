package database

import "holocron/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Planet{},
		&models.Person{},
		&models.Favorite{},
	}
}
