package models

// Category represents a node of a user's category tree.
//
// TreePath is the materialized path from the root to this category:
// dot-separated, zero-padded 8-digit id segments (e.g. "00000003.00000017").
// The fixed width makes lexicographic order agree with tree order, so a
// subtree is exactly the set of rows whose path starts with the root's path.
// Only the category service may write this column.
type Category struct {
	Base
	Title    string `gorm:"not null;uniqueIndex:idx_categories_title_user" json:"title"`
	ParentID *uint  `json:"parent_id,omitempty"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_categories_title_user" json:"user_id"`
	TreePath string `gorm:"not null;index" json:"tree_path"`

	// Relationships
	Parent     *Category   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children   []Category  `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Operations []Operation `gorm:"foreignKey:CategoryID" json:"operations,omitempty"`
}
