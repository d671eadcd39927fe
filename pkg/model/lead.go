package model

// Lead payloads accepted by the marketing site routes. The routes validate
// them and answer NOT_IMPLEMENTED; nothing is stored.

type EarlyAccessRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name,omitempty" validate:"omitempty,max=100"`
}

type DemoRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Company string `json:"company,omitempty" validate:"omitempty,max=150"`
	Message string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

type InvestorRequest DemoRequest

// LeadForm holds the fields of the site's lead-capture forms. Phone is the
// composed value from the attached phone input, normalized to E.164 before
// validation.
type LeadForm struct {
	OrgName   string `json:"orgName" yaml:"org_name" validate:"required,max=150"`
	FullName  string `json:"fullName" yaml:"full_name" validate:"required,max=100"`
	WorkEmail string `json:"workEmail" yaml:"work_email" validate:"required,email,max=254"`
	Role      string `json:"role" yaml:"role" validate:"required,max=100"`
	OrgType   string `json:"orgType" yaml:"org_type,omitempty" validate:"max=50"`
	Phone     string `json:"phone" yaml:"phone" validate:"required,e164"`
}
