package services

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateUsername is returned by SignUp when the username is taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrPasswordMismatch is returned by SignUp when the confirmation differs.
	ErrPasswordMismatch = errors.New("password and confirmation do not match")
	// ErrInvalidCredentials is returned by SignIn for an unknown username and
	// for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")
)

// Messages shown to users. The sign-in message is also used for a taken
// username at sign-up so neither flow reveals which usernames exist.
const (
	MsgInvalidCredentials = "Username or Password is invalid"
	MsgPasswordMismatch   = "Password and Confirm Password must match"
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrValidation) hold for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// maxbytes limits the encoded length of a string, unlike max which
	// counts runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return v
}

// validateStruct runs the struct tags of v and converts the first failure
// into a *ValidationError.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate input: %w", err)
	}
	fe := fieldErrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	case "max", "maxbytes":
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s is too long", field)}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s is invalid", field)}
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
