package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	inputerrors "pillziy/internal/phoneinput/errors"
	"pillziy/internal/phoneinput/repository"
	"pillziy/internal/phoneinput/validator"
	"pillziy/pkg/config"
	apperrors "pillziy/pkg/errors"
	"pillziy/pkg/locale"
	"pillziy/pkg/logger"
	"pillziy/pkg/model"
	"pillziy/pkg/phoneinput"
)

// maxKeystrokeLength caps the field content a keystroke may carry. Longer
// content is a rejected keystroke, never a request error.
const maxKeystrokeLength = 256

type PhoneInputService interface {
	ListCountries(ctx context.Context, query string, limit int) ([]locale.Country, int, error)
	GetCountry(ctx context.Context, code string) (*locale.Country, error)

	Create(ctx context.Context, req *model.CreatePhoneInputRequest) (*model.PhoneInputState, error)
	GetByID(ctx context.Context, id string) (*model.PhoneInputState, error)
	SelectCountry(ctx context.Context, id string, req *model.SelectCountryRequest) (*model.PhoneInputState, error)
	ApplyKeystroke(ctx context.Context, id string, req *model.KeystrokeRequest) (*model.KeystrokeResult, error)
	Delete(ctx context.Context, id string) error
}

type phoneInputService struct {
	store     repository.SessionStore
	validator *validator.PhoneInputValidator
	countries *locale.Table
	engine    phoneinput.Engine
	log       *logger.Logger
}

func NewPhoneInputService(
	store repository.SessionStore,
	validator *validator.PhoneInputValidator,
	countries *locale.Table,
	engine phoneinput.Engine,
	log *logger.Logger,
) PhoneInputService {
	return &phoneInputService{
		store:     store,
		validator: validator,
		countries: countries,
		engine:    engine,
		log:       log,
	}
}

func (s *phoneInputService) ListCountries(ctx context.Context, query string, limit int) ([]locale.Country, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, apperrors.Timeout("Request cancelled")
	}

	matches := s.countries.Search(query)
	total := len(matches)
	limit = config.NormalizeCountryLimit(limit)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, total, nil
}

func (s *phoneInputService) GetCountry(_ context.Context, code string) (*locale.Country, error) {
	c, ok := s.countries.Lookup(code)
	if !ok {
		return nil, apperrors.NotFoundWithID("Country", strings.ToUpper(code))
	}
	return &c, nil
}

func (s *phoneInputService) Create(ctx context.Context, req *model.CreatePhoneInputRequest) (*model.PhoneInputState, error) {
	if err := s.validate(req, "Phone input"); err != nil {
		return nil, err
	}

	country := s.countries.Default()
	if req.Country != "" {
		country, _ = s.countries.Lookup(req.Country)
	}

	session := &repository.Session{
		ID:    uuid.NewString(),
		Input: phoneinput.New(s.engine, country, phoneinput.WithLogger(s.log)),
	}

	if err := s.store.Create(session); err != nil {
		if errors.Is(err, inputerrors.ErrSessionLimit) {
			s.log.Warn("Phone input session limit reached", "sessions", s.store.Len())
			return nil, apperrors.Unavailable("phone input sessions")
		}
		return nil, apperrors.Internal("Failed to create phone input", err)
	}

	s.log.Info("Phone input created",
		"id", session.ID,
		"country", country.Code,
	)

	session.Lock()
	defer session.Unlock()
	return s.snapshot(session), nil
}

func (s *phoneInputService) GetByID(ctx context.Context, id string) (*model.PhoneInputState, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()
	return s.snapshot(session), nil
}

func (s *phoneInputService) SelectCountry(ctx context.Context, id string, req *model.SelectCountryRequest) (*model.PhoneInputState, error) {
	if err := s.validate(req, "Country selection"); err != nil {
		return nil, err
	}

	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	country, _ := s.countries.Lookup(req.Country)

	session.Lock()
	defer session.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, apperrors.Timeout("Request cancelled")
	}
	session.Input.SelectCountry(country)

	s.log.Debug("Phone input country selected",
		"id", id,
		"country", country.Code,
	)
	return s.snapshot(session), nil
}

func (s *phoneInputService) ApplyKeystroke(ctx context.Context, id string, req *model.KeystrokeRequest) (*model.KeystrokeResult, error) {
	if err := s.validate(req, "Keystroke"); err != nil {
		return nil, err
	}

	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, apperrors.Timeout("Request cancelled")
	}
	if len(*req.Value) > maxKeystrokeLength {
		s.log.Debug("Keystroke rejected", "id", id, "length", len(*req.Value))
		return model.NewKeystrokeResult(phoneinput.Result{
			Rejection: phoneinput.TooLong,
			Display:   session.Input.Display(),
			Value:     session.Input.Value(),
			State:     session.Input.State(),
			Formatted: true,
		}), nil
	}
	return model.NewKeystrokeResult(session.Input.ApplyKeystroke(*req.Value)), nil
}

func (s *phoneInputService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Phone input ID cannot be empty")
	}
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, inputerrors.ErrSessionNotFound) {
			return apperrors.NotFoundWithID("Phone input", id)
		}
		return apperrors.Internal("Failed to delete phone input", err)
	}

	s.log.Info("Phone input deleted", "id", id)
	return nil
}

func (s *phoneInputService) session(id string) (*repository.Session, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Phone input ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.InvalidInput("Invalid phone input ID format")
	}

	session, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, inputerrors.ErrSessionNotFound) {
			return nil, apperrors.NotFoundWithID("Phone input", id)
		}
		return nil, apperrors.Internal("Failed to retrieve phone input", err)
	}
	return session, nil
}

func (s *phoneInputService) validate(req any, what string) error {
	if err := s.validator.Validate(req); err != nil {
		s.log.Warn(what+" validation failed", "error", err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation(what+" validation failed", map[string]any{
				"errors": []validator.ValidationError(verrs),
			})
		}
		return apperrors.InvalidInput(err.Error())
	}
	return nil
}

// snapshot must be called with the session locked.
func (s *phoneInputService) snapshot(session *repository.Session) *model.PhoneInputState {
	in := session.Input
	return &model.PhoneInputState{
		ID:        session.ID,
		Country:   in.Country(),
		Display:   in.Display(),
		Value:     in.Value(),
		State:     in.State(),
		CreatedAt: session.CreatedAt,
		ExpiresAt: s.store.ExpiresAt(session),
	}
}
