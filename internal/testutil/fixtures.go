package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"walleto/internal/models"
	"walleto/internal/treepath"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := nextID()
	user := &models.User{
		Email:     fmt.Sprintf("user%d@test.com", n),
		Password:  string(hash),
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", n),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a valid tree path, optionally
// under a parent. The path is written directly, the same two-step way the
// category service does it.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, title string, parent *models.Category) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Title:  title,
	}
	parentPath := ""
	if parent != nil {
		category.ParentID = &parent.ID
		parentPath = parent.TreePath
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	path := treepath.Child(parentPath, category.ID)
	if err := db.Model(category).Update("tree_path", path).Error; err != nil {
		t.Fatalf("failed to set test category path: %v", err)
	}
	category.TreePath = path
	return category
}

// CreateTestOperation creates an operation of the given type and amount
// (in minor units) dated now, optionally tagged with a category.
func CreateTestOperation(t *testing.T, db *gorm.DB, userID uint, opType models.OperationType, amount int64, categoryID *uint) *models.Operation {
	t.Helper()
	return CreateTestOperationAt(t, db, userID, opType, amount, categoryID, time.Now())
}

// CreateTestOperationAt creates an operation with an explicit operation date.
func CreateTestOperationAt(t *testing.T, db *gorm.DB, userID uint, opType models.OperationType, amount int64, categoryID *uint, date time.Time) *models.Operation {
	t.Helper()

	operation := &models.Operation{
		Type:          opType,
		Amount:        amount,
		CategoryID:    categoryID,
		RecordDate:    time.Now(),
		OperationDate: date,
		UserID:        userID,
	}
	if err := db.Create(operation).Error; err != nil {
		t.Fatalf("failed to create test operation: %v", err)
	}
	return operation
}
