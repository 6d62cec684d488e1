package services

import (
	"time"

	"walleto/internal/models"
	"walleto/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryUpdate holds the optional fields of a category update. ParentSet
// distinguishes "parent_id absent" from an explicit "parent_id": null,
// which moves the category back to the root.
type CategoryUpdate struct {
	Title     *string
	ParentID  *uint
	ParentSet bool
}

// CategoryServicer defines the contract for the category store. It is the
// sole owner of the tree_path column: every mutation that can change the
// materialized path funnels through these methods.
type CategoryServicer interface {
	CreateCategory(userID uint, title string, parentID *uint) (*models.Category, error)
	GetUserCategories(userID uint) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, upd CategoryUpdate) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
	IsOwner(userID, categoryID uint) (bool, error)
}

// OperationInput holds the fields accepted when creating an operation.
// OperationDate is the raw user-supplied timestamp string; an empty value
// defaults to the server-assigned record date.
type OperationInput struct {
	Type          models.OperationType
	Amount        *int64
	Description   *string
	CategoryID    *uint
	OperationDate string
}

// OperationUpdate holds the optional fields of a partial operation update.
type OperationUpdate struct {
	Type          *models.OperationType
	Amount        *int64
	Description   *string
	CategoryID    *uint
	OperationDate *string
}

// OperationServicer defines the contract for operation-related business logic.
type OperationServicer interface {
	CreateOperation(userID uint, in OperationInput) (*models.Operation, error)
	GetOperationByID(userID, operationID uint) (*models.Operation, error)
	UpdateOperation(userID, operationID uint, upd OperationUpdate) (*models.Operation, error)
	DeleteOperation(userID, operationID uint) error
	IsOwner(userID, operationID uint) (bool, error)
}

// ReportFilter holds the report query parameters. Period-derived bounds are
// applied first; explicit From/To override the derived value per field.
type ReportFilter struct {
	CategoryID *uint
	From       string
	To         string
	Period     string
	Page       pagination.PageRequest
}

// CategoryRef is a category reference (id and title only) in an
// operation's ancestry chain.
type CategoryRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// ReportOperation is one operation row of a report, with its category
// ancestry resolved from the materialized path, root first.
type ReportOperation struct {
	ID            uint                 `json:"id"`
	Type          models.OperationType `json:"type"`
	Amount        int64                `json:"amount"`
	Description   *string              `json:"description"`
	OperationDate time.Time            `json:"operation_date"`
	Categories    []CategoryRef        `json:"categories"`
}

// Report is a filtered, paginated, aggregated view of a user's operations.
// The totals cover the whole filtered set, not just the returned page.
type Report struct {
	Operations  []ReportOperation `json:"operations"`
	TotalAmount int64             `json:"total_amount"`
	TotalItems  int64             `json:"total_items"`
	TotalPages  int               `json:"total_pages"`
}

// ReportServicer defines the contract for the report engine. It reads the
// category and operation data but never mutates either store.
type ReportServicer interface {
	GetReport(userID uint, filter ReportFilter) (*Report, error)
}
