// Package validation configures the request validator shared by the HTTP
// handlers.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"assetgauge/internal/dataset"
	apierrors "assetgauge/internal/errors"
)

// New creates a validator with the dashboard's custom rules registered
// and JSON tag names used in error messages.
func New() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("datecolumn", isDateColumn)
	v.RegisterValidation("exportformat", isExportFormat)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// isDateColumn accepts only the coercible date column names.
func isDateColumn(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, name := range dataset.DateColumns {
		if name == value {
			return true
		}
	}
	return false
}

// isExportFormat accepts the supported export formats.
func isExportFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "csv", "xlsx":
		return true
	}
	return false
}

// ToAPIError converts validator errors into a field-detailed APIError.
func ToAPIError(err error) *apierrors.APIError {
	var details []apierrors.ValidationError
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			details = append(details, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: "failed validation rule: " + fe.Tag(),
			})
		}
	}
	return apierrors.NewWithDetails(400, "VALIDATION_FAILED", "Request validation failed", details)
}
