package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"pillziy/pkg/locale"
	"pillziy/pkg/logger"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type PhoneInputValidator struct {
	validate  *validator.Validate
	countries *locale.Table
	logger    *logger.Logger
}

func NewPhoneInputValidator(countries *locale.Table, log *logger.Logger) *PhoneInputValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	pv := &PhoneInputValidator{
		validate:  v,
		countries: countries,
		logger:    log,
	}

	if err := v.RegisterValidation("country", pv.validateCountry); err != nil {
		log.Fatal("Failed to register 'country' validator", "error", err)
	}

	log.Info("Phone input validator initialized successfully")

	return pv
}

func (v *PhoneInputValidator) validateCountry(fl validator.FieldLevel) bool {
	_, ok := v.countries.Lookup(fl.Field().String())
	return ok
}

// Validate checks any request struct carrying validate tags.
func (v *PhoneInputValidator) Validate(req any) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "country":
			message = fmt.Sprintf("%s must be a supported two-letter country code, got %q", err.Field(), err.Value())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
