package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaderrors "pillziy/internal/leads/errors"
	"pillziy/internal/leads/validator"
	apperrors "pillziy/pkg/errors"
	"pillziy/pkg/locale"
	"pillziy/pkg/model"
)

func fill(t *testing.T, f *Form) {
	t.Helper()
	require.NoError(t, f.Set(FieldOrgName, "  Acme   Health "))
	require.NoError(t, f.Set(FieldFullName, "John Doe"))
	require.NoError(t, f.Set(FieldWorkEmail, "John@Acme.COM"))
	require.NoError(t, f.Set(FieldRole, "Clinical Director"))
	require.NoError(t, f.Set(FieldOrgType, "Clinic"))
	res := f.ApplyPhoneKeystroke("2015550123")
	require.True(t, res.Accepted)
}

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	require.Equal(t, apperrors.CodeValidation, appErr.Code)

	errs, ok := appErr.Details["errors"].([]validator.ValidationError)
	require.True(t, ok)
	return validator.ValidationErrors(errs).Fields()
}

func TestForm_PhoneFeedsField(t *testing.T) {
	f := New(Config{Variant: Contact})
	t.Cleanup(f.Close)

	assert.Equal(t, "US", f.PhoneCountry().Code)
	assert.Equal(t, "", f.Values().Phone)

	f.ApplyPhoneKeystroke("20155")
	assert.Equal(t, "+1 (201) 55", f.Values().Phone)
	assert.Equal(t, "(201) 55", f.PhoneDisplay())

	gb, _ := locale.Lookup("GB")
	f.SelectPhoneCountry(gb)
	assert.Equal(t, "+44", f.Values().Phone)

	assert.ErrorIs(t, f.Set(FieldPhone, "+44 1"), leaderrors.ErrPhoneManaged)
	assert.ErrorIs(t, f.Set(Field("fax"), "1"), leaderrors.ErrUnknownField)
}

func TestForm_Validate(t *testing.T) {
	f := New(Config{Variant: Demo})
	t.Cleanup(f.Close)

	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orgName is required")
	assert.Contains(t, err.Error(), "phone is required")
	assert.Contains(t, err.Error(), "orgType is required")

	fill(t, f)
	assert.NoError(t, f.Validate())

	require.NoError(t, f.Set(FieldOrgType, "Hospital"))
	assert.ErrorContains(t, f.Validate(), "orgType must be one of")
}

func TestForm_ContactOrgTypeOptional(t *testing.T) {
	f := New(Config{Variant: Contact})
	t.Cleanup(f.Close)

	fill(t, f)
	require.NoError(t, f.Set(FieldOrgType, ""))
	assert.NoError(t, f.Validate())

	require.NoError(t, f.Set(FieldOrgType, "Employer"))
	assert.Error(t, f.Validate(), "Employer is a demo-only organization type")
}

func TestForm_SubmitContactResetsAfterDelay(t *testing.T) {
	f := New(Config{Variant: Contact, ResetDelay: 20 * time.Millisecond})
	t.Cleanup(f.Close)
	fill(t, f)

	sub, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, "contact", sub.Variant)
	assert.Equal(t, model.LeadForm{
		OrgName:   "Acme Health",
		FullName:  "John Doe",
		WorkEmail: "john@acme.com",
		Role:      "Clinical Director",
		OrgType:   "Clinic",
		Phone:     "+12015550123",
	}, sub.Lead)

	assert.True(t, f.Submitted())
	assert.Equal(t, "John Doe", f.Values().FullName, "fields stay until the delay passes")

	_, err = f.Submit()
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)

	assert.Eventually(t, func() bool { return !f.Submitted() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, model.LeadForm{}, f.Values())
	assert.Equal(t, "", f.PhoneDisplay())
}

func TestForm_SubmitDemoResetsImmediately(t *testing.T) {
	f := New(Config{Variant: Demo})
	t.Cleanup(f.Close)
	fill(t, f)

	_, err := f.Submit()
	require.NoError(t, err)
	assert.True(t, f.Submitted())
	assert.Equal(t, model.LeadForm{}, f.Values())

	f.Dismiss()
	assert.False(t, f.Submitted())
}

func TestForm_DismissCancelsPendingReset(t *testing.T) {
	f := New(Config{Variant: Contact, ResetDelay: time.Hour})
	t.Cleanup(f.Close)
	fill(t, f)

	_, err := f.Submit()
	require.NoError(t, err)

	f.Dismiss()
	assert.False(t, f.Submitted())
	assert.Equal(t, model.LeadForm{}, f.Values())
}

func TestForm_SubmitInvalid(t *testing.T) {
	f := New(Config{Variant: Contact})
	t.Cleanup(f.Close)
	fill(t, f)
	require.NoError(t, f.Set(FieldWorkEmail, "not-an-email"))

	_, err := f.Submit()
	assert.Equal(t, []string{"workEmail"}, validationFields(t, err))
	assert.False(t, f.Submitted())
}

func TestVariantByName(t *testing.T) {
	v, ok := VariantByName("demo")
	require.True(t, ok)
	assert.True(t, v.OrgTypeRequired)

	_, ok = VariantByName("newsletter")
	assert.False(t, ok)
}
