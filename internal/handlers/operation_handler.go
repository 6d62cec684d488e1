package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "walleto/internal/errors"
	"walleto/internal/models"
	"walleto/internal/services"
)

// OperationHandler handles operation-related requests.
type OperationHandler struct {
	operationService services.OperationServicer
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(operationService services.OperationServicer) *OperationHandler {
	return &OperationHandler{operationService: operationService}
}

// CreateOperationRequest represents the request payload for creating an
// operation. Type and amount are checked by the service so their absence is
// reported as a rule violation rather than a malformed request.
type CreateOperationRequest struct {
	Type          models.OperationType `json:"type" binding:"omitempty,operation_type"`
	Amount        *int64               `json:"amount"`
	Description   *string              `json:"description" binding:"omitempty,max=500"`
	CategoryID    *uint                `json:"category_id"`
	OperationDate string               `json:"operation_date"`
}

// UpdateOperationRequest represents the request payload for updating an operation
type UpdateOperationRequest struct {
	Type          *models.OperationType `json:"type" binding:"omitempty,operation_type"`
	Amount        *int64                `json:"amount"`
	Description   *string               `json:"description" binding:"omitempty,max=500"`
	CategoryID    *uint                 `json:"category_id"`
	OperationDate *string               `json:"operation_date"`
}

// OperationResponse represents an operation in the response
type OperationResponse struct {
	ID            uint                 `json:"id"`
	Type          models.OperationType `json:"type"`
	Amount        int64                `json:"amount"`
	Description   *string              `json:"description,omitempty"`
	CategoryID    *uint                `json:"category_id,omitempty"`
	RecordDate    time.Time            `json:"record_date"`
	OperationDate time.Time            `json:"operation_date"`
}

// CreateOperation handles the creation of a new operation
// @Summary     Create an operation
// @Description Record an income or expense, optionally categorized and dated
// @Tags        operations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateOperationRequest true "Operation details"
// @Success     201 {object} OperationResponse "Operation created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Business rule violation"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /operations [post]
func (h *OperationHandler) CreateOperation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	operation, err := h.operationService.CreateOperation(userID, services.OperationInput{
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		OperationDate: req.OperationDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"operation": operation})
}

// GetOperation returns a single operation
// @Summary     Get an operation
// @Description Get one operation of the authenticated user by ID
// @Tags        operations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Operation ID"
// @Success     200 {object} OperationResponse "Operation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Operation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /operations/{id} [get]
func (h *OperationHandler) GetOperation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	operationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	operation, err := h.operationService.GetOperationByID(userID, operationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"operation": operation})
}

// UpdateOperation handles partial operation updates
// @Summary     Update an operation
// @Description Update any of an operation's fields. Changing the type without
// @Description an explicit amount flips the stored amount's sign.
// @Tags        operations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Operation ID"
// @Param       request body UpdateOperationRequest true "Fields to update"
// @Success     200 {object} OperationResponse "Updated operation"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Operation owned by another user"
// @Failure     422 {object} ErrorResponse "Business rule violation"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /operations/{id} [patch]
func (h *OperationHandler) UpdateOperation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	operationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	operation, err := h.operationService.UpdateOperation(userID, operationID, services.OperationUpdate{
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		OperationDate: req.OperationDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"operation": operation})
}

// DeleteOperation handles the deletion of an operation
// @Summary     Delete an operation
// @Description Delete one operation of the authenticated user
// @Tags        operations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Operation ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Operation owned by another user"
// @Failure     422 {object} ErrorResponse "Operation does not exist"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /operations/{id} [delete]
func (h *OperationHandler) DeleteOperation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	operationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.operationService.DeleteOperation(userID, operationID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Operation deleted successfully"})
}
