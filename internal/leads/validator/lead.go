package validator

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"pillziy/pkg/logger"
	"pillziy/pkg/model"
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

// Fields lists the fields that failed, in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, err := range v {
		fields = append(fields, err.Field)
	}
	return fields
}

type LeadValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewLeadValidator(log *logger.Logger) *LeadValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	log.Debug("Lead validator initialized successfully")

	return &LeadValidator{
		validate: v,
		logger:   log,
	}
}

// Validate checks a lead route payload.
func (v *LeadValidator) Validate(req any) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// ValidateForm checks a form snapshot. The organization type must be one of
// orgTypes when given, and is mandatory when orgTypeRequired is set.
func (v *LeadValidator) ValidateForm(form *model.LeadForm, orgTypes []string, orgTypeRequired bool) error {
	var validationErrors ValidationErrors

	if err := v.validate.Struct(form); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}
		validationErrors = translateValidationErrors(validationErrs)
	}

	switch {
	case form.OrgType == "" && orgTypeRequired:
		validationErrors = append(validationErrors, ValidationError{
			Field:   "orgType",
			Message: "orgType is required",
		})
	case form.OrgType != "" && !slices.Contains(orgTypes, form.OrgType):
		validationErrors = append(validationErrors, ValidationError{
			Field:   "orgType",
			Message: fmt.Sprintf("orgType must be one of: %s", strings.Join(orgTypes, ", ")),
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
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
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be a complete international phone number", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
