package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "walleto/internal/errors"
	"walleto/internal/models"
)

// operationDateLayouts are the accepted formats for user-supplied dates,
// tried in order. time.RFC3339Nano also covers plain RFC3339 values.
var operationDateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02",
}

// parseOperationDate parses a user-supplied operation date string.
func parseOperationDate(value string) (time.Time, error) {
	for _, layout := range operationDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidDateFormat,
		"Wrong date format. It must be ISO-8601, e.g. 2006-01-02T15:04:05")
}

// checkAmount validates the sign-vs-type rule: income is strictly
// positive, expenses strictly negative.
func checkAmount(opType models.OperationType, amount int64) error {
	switch opType {
	case models.OperationTypeIncome:
		if amount <= 0 {
			return apperrors.WithMessage(apperrors.ErrAmountSignMismatch, "Income must be > 0")
		}
	case models.OperationTypeExpenses:
		if amount >= 0 {
			return apperrors.WithMessage(apperrors.ErrAmountSignMismatch, "Expenses must be < 0")
		}
	}
	return nil
}

// operationService handles operation-related business logic.
type operationService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewOperationService creates a new OperationServicer.
func NewOperationService(db *gorm.DB, categoryService CategoryServicer) OperationServicer {
	return &operationService{
		db:              db,
		categoryService: categoryService,
	}
}

// CreateOperation validates and stores a new operation for the user.
func (s *operationService) CreateOperation(userID uint, in OperationInput) (*models.Operation, error) {
	if in.Type == "" {
		return nil, apperrors.WithMessage(apperrors.ErrBrokenRules, `Missing field "type"`)
	}
	if in.Amount == nil || *in.Amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrBrokenRules, `Missing field "amount"`)
	}
	if in.Type != models.OperationTypeIncome && in.Type != models.OperationTypeExpenses {
		return nil, apperrors.ErrInvalidOperationType
	}
	if err := checkAmount(in.Type, *in.Amount); err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		if err := s.checkCategory(userID, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	recordDate := time.Now()
	operationDate := recordDate
	if in.OperationDate != "" {
		parsed, err := parseOperationDate(in.OperationDate)
		if err != nil {
			return nil, err
		}
		operationDate = parsed
	}

	operation := &models.Operation{
		Type:          in.Type,
		Amount:        *in.Amount,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		RecordDate:    recordDate,
		OperationDate: operationDate,
		UserID:        userID,
	}

	if err := s.db.Create(operation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return operation, nil
}

// GetOperationByID retrieves an operation by ID for a specific user
func (s *operationService) GetOperationByID(userID, operationID uint) (*models.Operation, error) {
	var operation models.Operation
	if err := s.db.Where("id = ? AND user_id = ?", operationID, userID).First(&operation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOperationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &operation, nil
}

// UpdateOperation applies a partial update. When the type changes and no
// explicit amount is given, the stored amount's sign is flipped so it keeps
// agreeing with the new type (magnitude preserved).
func (s *operationService) UpdateOperation(userID, operationID uint, upd OperationUpdate) (*models.Operation, error) {
	operation, err := s.getForWrite(userID, operationID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if upd.Type != nil {
		if *upd.Type != models.OperationTypeIncome && *upd.Type != models.OperationTypeExpenses {
			return nil, apperrors.ErrInvalidOperationType
		}
		if *upd.Type != operation.Type && upd.Amount == nil {
			flipped := -operation.Amount
			upd.Amount = &flipped
		}
		updates["type"] = *upd.Type
	}

	if upd.Amount != nil {
		newType := operation.Type
		if upd.Type != nil {
			newType = *upd.Type
		}
		if err := checkAmount(newType, *upd.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *upd.Amount
	}

	if upd.CategoryID != nil {
		if err := s.checkCategory(userID, *upd.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *upd.CategoryID
	}

	if upd.Description != nil {
		updates["description"] = *upd.Description
	}

	if upd.OperationDate != nil {
		parsed, err := parseOperationDate(*upd.OperationDate)
		if err != nil {
			return nil, err
		}
		updates["operation_date"] = parsed
	}

	if len(updates) > 0 {
		if err := s.db.Model(operation).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetOperationByID(userID, operationID)
}

// DeleteOperation deletes an operation. A missing operation is a business
// rule violation, surfaced distinctly from plain not-found reads.
func (s *operationService) DeleteOperation(userID, operationID uint) error {
	operation, err := s.getForWrite(userID, operationID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(operation).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// IsOwner reports whether the operation belongs to the user. A missing
// operation is treated as not owned.
func (s *operationService) IsOwner(userID, operationID uint) (bool, error) {
	var operation models.Operation
	if err := s.db.Select("user_id").First(&operation, operationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return operation.UserID == userID, nil
}

// getForWrite fetches an operation for mutation: a missing row raises a
// BrokenRules error and another user's row is forbidden.
func (s *operationService) getForWrite(userID, operationID uint) (*models.Operation, error) {
	var operation models.Operation
	if err := s.db.First(&operation, operationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrBrokenRules,
				fmt.Sprintf("Operation with id %d does not exist", operationID))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if operation.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &operation, nil
}

// checkCategory verifies that the referenced category exists and belongs
// to the user; a bad reference is a business rule violation.
func (s *operationService) checkCategory(userID, categoryID uint) error {
	_, err := s.categoryService.GetCategoryByID(userID, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			return apperrors.WithMessage(apperrors.ErrBrokenRules,
				fmt.Sprintf("Category with id %d does not exist for that user", categoryID))
		}
		return err
	}
	return nil
}
