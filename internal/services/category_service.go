package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "walleto/internal/errors"
	"walleto/internal/models"
	"walleto/internal/treepath"
)

// categoryService owns the category tree and its materialized paths.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category under the given parent (nil = root).
//
// The path is written in two phases inside one transaction: the row is
// inserted with an empty path first because the id is unknown until then,
// and the computed path is committed in a follow-up update. Callers never
// observe the intermediate state.
func (s *categoryService) CreateCategory(userID uint, title string, parentID *uint) (*models.Category, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category title is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND title = ?", userID, title).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategoryTitle
	}

	parentPath := ""
	if parentID != nil {
		var parent models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *parentID, userID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrParentCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		parentPath = parent.TreePath
	}

	category := &models.Category{
		UserID:   userID,
		Title:    title,
		ParentID: parentID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateCategoryTitle
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		path := treepath.Child(parentPath, category.ID)
		if err := tx.Model(category).Update("tree_path", path).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		category.TreePath = path
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// GetUserCategories retrieves all categories for a user, ordered by
// tree_path. With zero-padded segments this is a depth-first pre-order
// traversal of the user's category forest.
func (s *categoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).
		Order("tree_path ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates a category's title and/or parent. Re-parenting
// rewrites the paths of the category and its whole subtree with a single
// bulk prefix replacement.
func (s *categoryService) UpdateCategory(userID, categoryID uint, upd CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if upd.Title != nil && *upd.Title != category.Title {
		if *upd.Title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category title is required")
		}
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("user_id = ? AND title = ? AND id <> ?", userID, *upd.Title, categoryID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategoryTitle
		}
		updates["title"] = *upd.Title
	}

	newPath := ""
	if upd.ParentSet && !sameParent(category.ParentID, upd.ParentID) {
		if upd.ParentID != nil {
			if *upd.ParentID == categoryID {
				return nil, apperrors.ErrSelfParentCategory
			}
			var parent models.Category
			if err := s.db.Where("id = ? AND user_id = ?", *upd.ParentID, userID).First(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.ErrParentCategoryNotFound
				}
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			// A descendant cannot become this category's parent: that would
			// make the category its own ancestor.
			if treepath.ContainsNode(parent.TreePath, categoryID) {
				return nil, apperrors.ErrCyclicCategoryParent
			}
			newPath = treepath.Child(parent.TreePath, categoryID)
		} else {
			newPath = treepath.Encode(categoryID)
		}
		updates["parent_id"] = upd.ParentID
	}

	if len(updates) == 0 {
		return category, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Category{}).
			Where("id = ?", categoryID).
			Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateCategoryTitle
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if newPath != "" {
			// Replace the old path prefix with the new one for the category
			// itself and every descendant in one statement. The relative
			// suffix below the category is untouched.
			oldPath := category.TreePath
			if err := tx.Model(&models.Category{}).
				Where("tree_path LIKE ?", oldPath+"%").
				Update("tree_path", gorm.Expr("? || substr(tree_path, ?)", newPath, len(oldPath)+1)).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCategoryByID(userID, categoryID)
}

// DeleteCategory deletes a category and its entire subtree. Operations
// referencing any deleted category are detached (category_id set to null)
// rather than removed; the whole cascade commits as one transaction.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var subtreeIDs []uint
		if err := tx.Model(&models.Category{}).
			Where("user_id = ? AND tree_path LIKE ?", userID, category.TreePath+"%").
			Pluck("id", &subtreeIDs).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.Operation{}).
			Where("category_id IN ?", subtreeIDs).
			Update("category_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Where("id IN ?", subtreeIDs).
			Delete(&models.Category{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// IsOwner reports whether the category belongs to the user. A missing
// category is treated as not owned.
func (s *categoryService) IsOwner(userID, categoryID uint) (bool, error) {
	var category models.Category
	if err := s.db.Select("user_id").First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category.UserID == userID, nil
}

func sameParent(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
