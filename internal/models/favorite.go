package models

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrFavoriteNoTarget means neither planet_id nor people_id is set.
	ErrFavoriteNoTarget = errors.New("a favorite must be either a planet or a person")
	// ErrFavoriteBothTargets means planet_id and people_id are both set.
	ErrFavoriteBothTargets = errors.New("a favorite cannot be both a planet and a person")
)

// Favorite links one user to exactly one planet or one person.
type Favorite struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	UserID   uint  `gorm:"not null;index" json:"user_id"`
	PlanetID *uint `gorm:"index" json:"planet_id"`
	PeopleID *uint `gorm:"index" json:"people_id"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Planet *Planet `gorm:"foreignKey:PlanetID" json:"-"`
	People *Person `gorm:"foreignKey:PeopleID" json:"-"`
}

// TableName returns the database table name for Favorite.
func (Favorite) TableName() string {
	return "favorites"
}

// NewPlanetFavorite builds an unsaved favorite pointing at a planet.
func NewPlanetFavorite(userID, planetID uint) *Favorite {
	return &Favorite{UserID: userID, PlanetID: &planetID}
}

// NewPeopleFavorite builds an unsaved favorite pointing at a person.
func NewPeopleFavorite(userID, peopleID uint) *Favorite {
	return &Favorite{UserID: userID, PeopleID: &peopleID}
}

// Validate enforces the planet/person exclusive-or. The returned AppError
// wraps ErrFavoriteNoTarget or ErrFavoriteBothTargets.
func (f *Favorite) Validate() error {
	switch {
	case f.PlanetID == nil && f.PeopleID == nil:
		return NewInvariantError(ErrFavoriteNoTarget)
	case f.PlanetID != nil && f.PeopleID != nil:
		return NewInvariantError(ErrFavoriteBothTargets)
	}
	return nil
}

// BeforeSave rejects rows that break the exclusive-or on every write path.
func (f *Favorite) BeforeSave(_ *gorm.DB) error {
	return f.Validate()
}
