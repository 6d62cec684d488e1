package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "walleto/internal/errors"
	"walleto/internal/models"
	"walleto/internal/services"
)

type mockOperationService struct {
	createOperationFn  func(userID uint, in services.OperationInput) (*models.Operation, error)
	getOperationByIDFn func(userID, operationID uint) (*models.Operation, error)
	updateOperationFn  func(userID, operationID uint, upd services.OperationUpdate) (*models.Operation, error)
	deleteOperationFn  func(userID, operationID uint) error
	isOwnerFn          func(userID, operationID uint) (bool, error)
}

func (m *mockOperationService) CreateOperation(userID uint, in services.OperationInput) (*models.Operation, error) {
	if m.createOperationFn != nil {
		return m.createOperationFn(userID, in)
	}
	return &models.Operation{}, nil
}

func (m *mockOperationService) GetOperationByID(userID, operationID uint) (*models.Operation, error) {
	if m.getOperationByIDFn != nil {
		return m.getOperationByIDFn(userID, operationID)
	}
	return &models.Operation{}, nil
}

func (m *mockOperationService) UpdateOperation(userID, operationID uint, upd services.OperationUpdate) (*models.Operation, error) {
	if m.updateOperationFn != nil {
		return m.updateOperationFn(userID, operationID, upd)
	}
	return &models.Operation{}, nil
}

func (m *mockOperationService) DeleteOperation(userID, operationID uint) error {
	if m.deleteOperationFn != nil {
		return m.deleteOperationFn(userID, operationID)
	}
	return nil
}

func (m *mockOperationService) IsOwner(userID, operationID uint) (bool, error) {
	if m.isOwnerFn != nil {
		return m.isOwnerFn(userID, operationID)
	}
	return true, nil
}

func setupOperationRouter(handler *OperationHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("/", injectUserID(1))
	auth.POST("/operations", handler.CreateOperation)
	auth.GET("/operations/:id", handler.GetOperation)
	auth.PATCH("/operations/:id", handler.UpdateOperation)
	auth.DELETE("/operations/:id", handler.DeleteOperation)
	return r
}

func TestOperationHandler_CreateOperation(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotInput services.OperationInput
		opSvc := &mockOperationService{
			createOperationFn: func(_ uint, in services.OperationInput) (*models.Operation, error) {
				gotInput = in
				return &models.Operation{
					Base:   models.Base{ID: 12},
					Type:   in.Type,
					Amount: *in.Amount,
				}, nil
			},
		}
		handler := NewOperationHandler(opSvc)
		r := setupOperationRouter(handler)

		rec := doRequest(r, "POST", "/operations",
			`{"type":"expenses","amount":-2500,"description":"lunch","operation_date":"2024-03-15"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotInput.Type != models.OperationTypeExpenses || *gotInput.Amount != -2500 {
			t.Errorf("unexpected input %+v", gotInput)
		}
		if gotInput.OperationDate != "2024-03-15" {
			t.Errorf("expected raw date string, got %q", gotInput.OperationDate)
		}
	})

	t.Run("returns 400 on unknown type token", func(t *testing.T) {
		handler := NewOperationHandler(&mockOperationService{})
		r := setupOperationRouter(handler)

		rec := doRequest(r, "POST", "/operations", `{"type":"transfer","amount":100}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing fields reach the service", func(t *testing.T) {
		opSvc := &mockOperationService{
			createOperationFn: func(_ uint, _ services.OperationInput) (*models.Operation, error) {
				return nil, apperrors.WithMessage(apperrors.ErrBrokenRules, `Missing field "amount"`)
			},
		}
		handler := NewOperationHandler(opSvc)
		r := setupOperationRouter(handler)

		rec := doRequest(r, "POST", "/operations", `{"type":"income"}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BROKEN_RULES")
	})

	t.Run("returns 422 on sign mismatch", func(t *testing.T) {
		opSvc := &mockOperationService{
			createOperationFn: func(_ uint, _ services.OperationInput) (*models.Operation, error) {
				return nil, apperrors.ErrAmountSignMismatch
			},
		}
		handler := NewOperationHandler(opSvc)
		r := setupOperationRouter(handler)

		rec := doRequest(r, "POST", "/operations", `{"type":"income","amount":-100}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "AMOUNT_SIGN_MISMATCH")
	})
}

func TestOperationHandler_GetOperation(t *testing.T) {
	t.Run("returns the operation", func(t *testing.T) {
		opSvc := &mockOperationService{
			getOperationByIDFn: func(_, operationID uint) (*models.Operation, error) {
				return &models.Operation{
					Base:   models.Base{ID: operationID},
					Type:   models.OperationTypeIncome,
					Amount: 500,
				}, nil
			},
		}
		handler := NewOperationHandler(opSvc)
		r := setupOperationRouter(handler)

		rec := doRequest(r, "GET", "/operations/12", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		operation := result["operation"].(map[string]interface{})
		if operation["amount"].(float64) != 500 {
			t.Errorf("expected amount 500, got %v", operation["amount"])
		}
	})

	t.Run("returns 404 on missing operation", func(t *testing.T) {
		opSvc := &mockOperationService{
			getOperationByIDFn: func(_, _ uint) (*models.Operation, error) {
				return nil, apperrors.ErrOperationNotFound
			},
		}
		handler := NewOperationHandler(opSvc)
		r := setupOperationRouter(handler)

		rec := doRequest(r, "GET", "/operations/404", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestOperationHandler_UpdateOperation(t *testing.T) {
	t.Run("passes partial fields through", func(t *testing.T) {
		var gotUpd services.OperationUpdate
		opSvc := &mockOperationService{
			updateOperationFn: func(_, _ uint, upd services.OperationUpdate) (*models.Operation, error) {
				gotUpd = upd
				return &models.Operation{}, nil
			},
		}
		handler := NewOperationHandler(opSvc)
		r := setupOperationRouter(handler)

		rec := doRequest(r, "PATCH", "/operations/12", `{"type":"expenses"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotUpd.Type == nil || *gotUpd.Type != models.OperationTypeExpenses {
			t.Errorf("expected type expenses, got %v", gotUpd.Type)
		}
		if gotUpd.Amount != nil {
			t.Error("amount must stay nil when absent")
		}
	})

	t.Run("returns 403 on foreign operation", func(t *testing.T) {
		opSvc := &mockOperationService{
			updateOperationFn: func(_, _ uint, _ services.OperationUpdate) (*models.Operation, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewOperationHandler(opSvc)
		r := setupOperationRouter(handler)

		rec := doRequest(r, "PATCH", "/operations/12", `{"amount":100}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestOperationHandler_DeleteOperation(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewOperationHandler(&mockOperationService{})
		r := setupOperationRouter(handler)

		rec := doRequest(r, "DELETE", "/operations/12", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 422 on missing operation", func(t *testing.T) {
		opSvc := &mockOperationService{
			deleteOperationFn: func(_, _ uint) error {
				return apperrors.WithMessage(apperrors.ErrBrokenRules, "Operation with id 404 does not exist")
			},
		}
		handler := NewOperationHandler(opSvc)
		r := setupOperationRouter(handler)

		rec := doRequest(r, "DELETE", "/operations/404", "")

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BROKEN_RULES")
	})
}
