package models

// User owns a list of favorites. Users are created lazily, never registered.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:120;uniqueIndex;not null" json:"email"`

	Favorites []Favorite `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string {
	return "users"
}
