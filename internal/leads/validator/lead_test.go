package validator

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"pillziy/pkg/logger"
	"pillziy/pkg/model"
)

var orgTypes = []string{"Pharmacy", "Hospital", "Clinic"}

func validLead() *model.LeadForm {
	return &model.LeadForm{
		OrgName:   "Acme Pharmacy",
		FullName:  "Jo Bloggs",
		WorkEmail: "jo@acme.test",
		Role:      "Pharmacist",
		Phone:     "+447400123456",
	}
}

func TestValidateForm_OrgType(t *testing.T) {
	validator := NewLeadValidator(logger.Discard())

	tests := []struct {
		name            string
		orgType         string
		orgTypeRequired bool
		wantError       string
	}{
		{
			name:            "optional and empty",
			orgType:         "",
			orgTypeRequired: false,
		},
		{
			name:            "required and empty",
			orgType:         "",
			orgTypeRequired: true,
			wantError:       "orgType is required",
		},
		{
			name:            "known type",
			orgType:         "Clinic",
			orgTypeRequired: true,
		},
		{
			name:            "unknown type",
			orgType:         "Garage",
			orgTypeRequired: false,
			wantError:       "orgType must be one of: Pharmacy, Hospital, Clinic",
		},
		{
			name:            "types are case sensitive",
			orgType:         "pharmacy",
			orgTypeRequired: true,
			wantError:       "orgType must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validLead()
			form.OrgType = tt.orgType

			err := validator.ValidateForm(form, orgTypes, tt.orgTypeRequired)
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("ValidateForm() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("ValidateForm() error = %v, want it to contain %q", err, tt.wantError)
			}
		})
	}
}

func TestValidateForm_Fields(t *testing.T) {
	validator := NewLeadValidator(logger.Discard())

	form := validLead()
	form.FullName = ""
	form.WorkEmail = "not-an-email"
	form.Phone = "+44 7400 123456"

	err := validator.ValidateForm(form, orgTypes, true)

	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("ValidateForm() error = %v, want ValidationErrors", err)
	}

	want := []string{"fullName", "workEmail", "phone", "orgType"}
	if got := validationErrs.Fields(); !slices.Equal(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
	if !strings.Contains(err.Error(), "phone must be a complete international phone number") {
		t.Errorf("e164 failures should be explained, got %v", err)
	}
	if !strings.Contains(err.Error(), "workEmail must be a valid email address") {
		t.Errorf("email failures should be explained, got %v", err)
	}
}

func TestValidate_LeadRequests(t *testing.T) {
	validator := NewLeadValidator(logger.Discard())

	tests := []struct {
		name      string
		req       any
		wantField string
	}{
		{
			name: "valid demo request",
			req:  &model.DemoRequest{Name: "Jo", Email: "jo@acme.test"},
		},
		{
			name:      "demo request without email",
			req:       &model.DemoRequest{Name: "Jo"},
			wantField: "email",
		},
		{
			name:      "early access with long name",
			req:       &model.EarlyAccessRequest{Email: "jo@acme.test", Name: strings.Repeat("x", 101)},
			wantField: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}

			var validationErrs ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			if got := validationErrs.Fields(); !slices.Contains(got, tt.wantField) {
				t.Errorf("Fields() = %v, want %q", got, tt.wantField)
			}
		})
	}
}
