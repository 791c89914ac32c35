package dto

import (
	"errors"
	"fmt"
	"reflect"
	"repayment-engine/internal/domain/currency"
	"repayment-engine/internal/pkg/apperrors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		_, err := currency.Parse(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("dateortime", func(fl validator.FieldLevel) bool {
		_, ok := parseDateOrTime(fl.Field().String())
		return ok
	})
	return v
}

// parseDateOrTime accepts a calendar date or an RFC 3339 timestamp.
func parseDateOrTime(value string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, value)
	return t, err == nil
}

// validateStruct reports the first failing field as an apperrors validation error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}
	fe := fieldErrs[0]
	return apperrors.NewValidationError(fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "currency":
		return fmt.Sprintf("unsupported currency %q", fe.Value())
	case "datetime":
		return "must use the layout " + fe.Param()
	case "dateortime":
		return "must be a date (" + dateLayout + ") or an RFC 3339 timestamp"
	default:
		return "failed the " + fe.Tag() + " check"
	}
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required,max=255"`
}

func (r *TokenRequest) Validate() error {
	return validateStruct(r)
}

type TokenResponse struct {
	Token string `json:"token"`
}
