// Package models defines the persisted entities and the application error type.
package models

// Person is a catalog character. Every field is free text and required.
type Person struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:120;not null;index" json:"name"`
	Height    string `gorm:"size:80;not null" json:"height"`
	Mass      string `gorm:"size:80;not null" json:"mass"`
	HairColor string `gorm:"size:80;not null" json:"hair_color"`
	SkinColor string `gorm:"size:80;not null" json:"skin_color"`
	EyeColor  string `gorm:"size:80;not null" json:"eye_color"`
	BirthYear string `gorm:"size:80;not null" json:"birth_year"`
	Gender    string `gorm:"size:80;not null" json:"gender"`
}

// TableName returns the database table name for Person.
func (Person) TableName() string {
	return "people"
}

// Planet is a catalog planet.
type Planet struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:120;not null;index" json:"name"`
	Climate    string `gorm:"size:80;not null" json:"climate"`
	Terrain    string `gorm:"size:80;not null" json:"terrain"`
	Population string `gorm:"size:80;not null" json:"population"`
}

// TableName returns the database table name for Planet.
func (Planet) TableName() string {
	return "planets"
}
