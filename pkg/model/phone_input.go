package model

import (
	"time"

	"pillziy/pkg/locale"
	"pillziy/pkg/phoneinput"
)

type CreatePhoneInputRequest struct {
	Country string `json:"country" validate:"omitempty,country"`
}

type SelectCountryRequest struct {
	Country string `json:"country" validate:"required,country"`
}

// KeystrokeRequest carries the whole field content after an edit, not a
// single key.
type KeystrokeRequest struct {
	Value *string `json:"value" validate:"required"`
}

type PhoneInputState struct {
	ID        string           `json:"id"`
	Country   locale.Country   `json:"country"`
	Display   string           `json:"display"`
	Value     string           `json:"value"`
	State     phoneinput.State `json:"state"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

type KeystrokeResult struct {
	Accepted  bool                 `json:"accepted"`
	Rejection phoneinput.Rejection `json:"rejection,omitempty"`
	Display   string               `json:"display"`
	Value     string               `json:"value"`
	State     phoneinput.State     `json:"state"`
	Formatted bool                 `json:"formatted"`
	Valid     bool                 `json:"valid"`
}

func NewKeystrokeResult(res phoneinput.Result) *KeystrokeResult {
	return &KeystrokeResult{
		Accepted:  res.Accepted,
		Rejection: res.Rejection,
		Display:   res.Display,
		Value:     res.Value,
		State:     res.State,
		Formatted: res.Formatted,
		Valid:     res.Valid,
	}
}
