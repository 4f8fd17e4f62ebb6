package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags on a form
func Validate(form any) error {
	return validate.Struct(form)
}

// fieldLabels maps struct field names to the words shown to admins
var fieldLabels = map[string]string{
	"Email":           "Email",
	"Password":        "Password",
	"OTP":             "OTP",
	"NewPassword":     "New password",
	"ConfirmPassword": "Confirm password",
	"Name":            "Name",
	"Phone":           "Phone",
}

// ValidationMessage turns a validation error into one sentence for a flash.
// Non-validation errors return "".
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ""
	}

	fe := verrs[0]
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email", "contains":
		return "Please enter a valid email address"
	case "eqfield":
		return "Passwords do not match"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// IsValidationError reports whether err came from Validate
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// GetRequestID extracts the request id from the context
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// SearchQuery reads and normalises the q query parameter
func SearchQuery(c echo.Context) string {
	q := strings.TrimSpace(c.QueryParam("q"))
	if len(q) > 100 {
		q = q[:100]
	}
	return strings.ToLower(q)
}

// MatchesQuery reports whether any of fields contains q, case-insensitively.
// An empty q matches everything.
func MatchesQuery(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// SafeRedirect keeps post-login redirects on this site.
// Anything that is not a plain absolute path falls back to def.
func SafeRedirect(next, def string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return def
	}
	return next
}
