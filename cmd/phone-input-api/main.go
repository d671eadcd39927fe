package main

import (
	"pillziy/internal/leads/handler"
	leadvalidator "pillziy/internal/leads/validator"
	inputhandler "pillziy/internal/phoneinput/handler"
	"pillziy/internal/phoneinput/repository"
	"pillziy/internal/phoneinput/service"
	"pillziy/internal/phoneinput/validator"
	"pillziy/pkg/app"
	"pillziy/pkg/config"
	"pillziy/pkg/contracts"
	"pillziy/pkg/locale"
	"pillziy/pkg/numberplan"
)

const serviceName = "phone-input-api"

func main() {
	cfg := config.Load(serviceName)
	cfg.Log.Info("Starting Phone Input API service")

	countries, err := locale.Countries().WithDefault(cfg.DefaultCountry)
	if err != nil {
		cfg.Log.Fatal("Invalid default country", "error", err)
	}

	engine := numberplan.New()
	store := repository.NewInMemorySessionStore(cfg.SessionTTL, cfg.MaxSessions)

	phoneInputService := service.NewPhoneInputService(
		store,
		validator.NewPhoneInputValidator(countries, cfg.Log),
		countries,
		engine,
		cfg.Log,
	)
	cfg.Log.Info("Phone input service initialized", "countries", countries.Len(), "default_country", countries.Default().Code)

	application := app.NewApplication(cfg)
	application.SetApp(
		inputhandler.NewHealthHandler(engine, cfg.Log),
		[]contracts.Handler{
			inputhandler.NewPhoneInputHandler(phoneInputService, cfg.Log),
			handler.NewLeadHandler(leadvalidator.NewLeadValidator(cfg.Log), cfg.Log),
		},
		store,
	)
	application.Run()
}
