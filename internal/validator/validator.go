// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"walleto/internal/period"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("operation_type", validateOperationType)
		_ = v.RegisterValidation("report_period", validateReportPeriod)
	}
}

func validateOperationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expenses":
		return true
	}
	return false
}

func validateReportPeriod(fl validator.FieldLevel) bool {
	return period.IsValid(fl.Field().String())
}
