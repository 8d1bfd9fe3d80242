package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"dispatch/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo's Validate hook.
// Failures become ValueIsRequired / ValueIsInvalid errors named by JSON field.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator.
func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			joined = append(joined, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(fe.Field(), fmt.Errorf("failed %q check", fe.Tag())))
	}
	return errors.Join(joined...)
}
