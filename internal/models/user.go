package models

// User represents the user model in the database
type User struct {
	Base
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Relationships
	Categories []Category  `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Operations []Operation `gorm:"foreignKey:UserID" json:"operations,omitempty"`
}
