package models

import "time"

// OperationType represents the type of operation
type OperationType string

const (
	OperationTypeIncome   OperationType = "income"
	OperationTypeExpenses OperationType = "expenses"
)

// Operation represents a single income or expense record.
// Amount is a signed minor-unit value; its sign must agree with Type
// (income > 0, expenses < 0). RecordDate is assigned by the server at
// creation, OperationDate is what the user reports (defaults to RecordDate).
type Operation struct {
	Base
	Type          OperationType `gorm:"not null" json:"type"`
	Amount        int64         `gorm:"type:bigint;not null" json:"amount"`
	Description   *string       `json:"description,omitempty"`
	CategoryID    *uint         `json:"category_id,omitempty"`
	RecordDate    time.Time     `gorm:"not null" json:"record_date"`
	OperationDate time.Time     `gorm:"not null;index" json:"operation_date"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
