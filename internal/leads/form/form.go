// Package form is the state behind the site's lead-capture forms: the
// "Contact Us" page and the "Request a Demo" section. Submission is simulated;
// a submitted form only reports the normalized lead and resets itself.
package form

import (
	"errors"
	"sync"
	"time"

	leaderrors "pillziy/internal/leads/errors"
	"pillziy/internal/leads/validator"
	apperrors "pillziy/pkg/errors"
	"pillziy/pkg/locale"
	"pillziy/pkg/logger"
	"pillziy/pkg/model"
	"pillziy/pkg/numberplan"
	"pillziy/pkg/phoneinput"
	"pillziy/pkg/sanitizer"
)

type Field string

const (
	FieldOrgName   Field = "orgName"
	FieldFullName  Field = "fullName"
	FieldWorkEmail Field = "workEmail"
	FieldRole      Field = "role"
	FieldOrgType   Field = "orgType"
	FieldPhone     Field = "phone"
)

// Variant describes how one of the site's forms behaves.
type Variant struct {
	Name            string
	OrgTypes        []string
	OrgTypeRequired bool
	// DelayedReset keeps the thank-you state for the form's reset delay and
	// then clears everything. Otherwise fields clear at once and the thank-you
	// state stays until Dismiss.
	DelayedReset bool
}

var (
	Contact = Variant{
		Name:         "contact",
		OrgTypes:     []string{"Pharmacy", "Clinic", "Health system", "Senior care", "Home health", "Insurance"},
		DelayedReset: true,
	}

	Demo = Variant{
		Name:            "demo",
		OrgTypes:        []string{"Pharmacy", "Clinic", "Health system", "Senior care", "Home health", "Insurance", "Employer", "Other"},
		OrgTypeRequired: true,
	}
)

func VariantByName(name string) (Variant, bool) {
	switch name {
	case Contact.Name:
		return Contact, true
	case Demo.Name:
		return Demo, true
	default:
		return Variant{}, false
	}
}

type Submission struct {
	Variant     string         `json:"variant" yaml:"variant"`
	Lead        model.LeadForm `json:"lead" yaml:"lead"`
	SubmittedAt time.Time      `json:"submitted_at" yaml:"submitted_at"`
}

type Config struct {
	Variant    Variant
	Countries  *locale.Table
	Engine     phoneinput.Engine
	Validator  *validator.LeadValidator
	ResetDelay time.Duration
	Log        *logger.Logger
}

// Form is safe for concurrent use; the delayed reset runs on its own goroutine.
type Form struct {
	mu sync.Mutex

	cfg       Config
	values    model.LeadForm
	phone     *phoneinput.Input
	submitted bool

	timer      *time.Timer
	generation uint64
	now        func() time.Time
}

func New(cfg Config) *Form {
	if cfg.Countries == nil {
		cfg.Countries = locale.Countries()
	}
	if cfg.Log == nil {
		cfg.Log = logger.Discard()
	}
	if cfg.Engine == nil {
		cfg.Engine = numberplan.New()
	}
	if cfg.Validator == nil {
		cfg.Validator = validator.NewLeadValidator(cfg.Log)
	}

	f := &Form{cfg: cfg, now: time.Now}
	f.mountPhone()
	return f
}

func (f *Form) Variant() Variant {
	return f.cfg.Variant
}

// Set stores a text field. The phone field is owned by the phone input.
func (f *Form) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldOrgName:
		f.values.OrgName = value
	case FieldFullName:
		f.values.FullName = value
	case FieldWorkEmail:
		f.values.WorkEmail = value
	case FieldRole:
		f.values.Role = value
	case FieldOrgType:
		f.values.OrgType = value
	case FieldPhone:
		return leaderrors.ErrPhoneManaged
	default:
		return leaderrors.ErrUnknownField
	}
	return nil
}

func (f *Form) Values() model.LeadForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) Submitted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted
}

func (f *Form) PhoneCountry() locale.Country {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phone.Country()
}

func (f *Form) PhoneDisplay() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phone.Display()
}

func (f *Form) SelectPhoneCountry(country locale.Country) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phone.SelectCountry(country)
}

func (f *Form) ApplyPhoneKeystroke(raw string) phoneinput.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phone.ApplyKeystroke(raw)
}

// Validate checks the normalized form without submitting it.
func (f *Form) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lead := normalize(f.values)
	return f.cfg.Validator.ValidateForm(&lead, f.cfg.Variant.OrgTypes, f.cfg.Variant.OrgTypeRequired)
}

// Submit validates the form, reports the normalized lead and moves to the
// thank-you state.
func (f *Form) Submit() (*Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitted {
		return nil, apperrors.Conflict(leaderrors.ErrAlreadySubmitted.Error())
	}

	lead := normalize(f.values)
	if err := f.cfg.Validator.ValidateForm(&lead, f.cfg.Variant.OrgTypes, f.cfg.Variant.OrgTypeRequired); err != nil {
		f.cfg.Log.Warn("Lead form validation failed",
			"variant", f.cfg.Variant.Name,
			"error", err,
		)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("Lead form validation failed", map[string]any{
				"errors": []validator.ValidationError(verrs),
			})
		}
		return nil, apperrors.Internal("Failed to validate lead form", err)
	}

	submission := &Submission{
		Variant:     f.cfg.Variant.Name,
		Lead:        lead,
		SubmittedAt: f.now(),
	}
	f.submitted = true

	if f.cfg.Variant.DelayedReset {
		f.scheduleResetLocked()
	} else {
		f.clearLocked()
	}

	f.cfg.Log.Info("Lead form submitted",
		"variant", f.cfg.Variant.Name,
		"org_type", lead.OrgType,
	)
	return submission, nil
}

// Dismiss leaves the thank-you state ("Send another request"). A pending
// delayed reset happens immediately.
func (f *Form) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.submitted {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
		f.generation++
		f.clearLocked()
	}
	f.submitted = false
}

// Close cancels a pending reset.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.generation++
}

func (f *Form) scheduleResetLocked() {
	f.generation++
	gen := f.generation
	f.timer = time.AfterFunc(f.cfg.ResetDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		if gen != f.generation {
			return
		}
		f.timer = nil
		f.clearLocked()
		f.submitted = false
		f.cfg.Log.Debug("Lead form reset", "variant", f.cfg.Variant.Name)
	})
}

func (f *Form) clearLocked() {
	f.values = model.LeadForm{}
	f.mountPhone()
}

// mountPhone attaches a fresh phone input whose composed value feeds the
// phone field.
func (f *Form) mountPhone() {
	f.phone = phoneinput.New(f.cfg.Engine, f.cfg.Countries.Default(),
		phoneinput.WithLogger(f.cfg.Log),
		phoneinput.WithOnChange(func(value string) {
			f.values.Phone = value
		}),
	)
}

func normalize(v model.LeadForm) model.LeadForm {
	return model.LeadForm{
		OrgName:   sanitizer.NormalizeName(v.OrgName),
		FullName:  sanitizer.NormalizeName(v.FullName),
		WorkEmail: sanitizer.NormalizeEmail(v.WorkEmail),
		Role:      sanitizer.TrimAndNormalize(v.Role),
		OrgType:   sanitizer.TrimAndNormalize(v.OrgType),
		Phone:     sanitizer.NormalizePhone(v.Phone),
	}
}
