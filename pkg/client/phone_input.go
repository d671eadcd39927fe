// Package client talks to the phone input API over HTTP.
package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"pillziy/pkg/locale"
	"pillziy/pkg/model"
)

type PhoneInputClient struct {
	httpClient *HttpClient
}

func NewPhoneInputClient(baseURL string) *PhoneInputClient {
	return &PhoneInputClient{
		httpClient: NewHttpClient(baseURL),
	}
}

// HTTP exposes the underlying client, e.g. to wait for the service.
func (c *PhoneInputClient) HTTP() *HttpClient {
	return c.httpClient
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type countryList struct {
	Data       []locale.Country `json:"data"`
	TotalCount int              `json:"total_count"`
	Limit      int              `json:"limit"`
}

func (c *PhoneInputClient) ListCountries(ctx context.Context, query string, limit int) ([]locale.Country, int, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/v1/countries"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var list countryList
	if err := c.do(func() (*Response, error) { return c.httpClient.GET(ctx, path) }, &list); err != nil {
		return nil, 0, err
	}
	return list.Data, list.TotalCount, nil
}

func (c *PhoneInputClient) GetCountry(ctx context.Context, code string) (*locale.Country, error) {
	var out envelope[locale.Country]
	path := "/api/v1/countries/" + url.PathEscape(code)
	if err := c.do(func() (*Response, error) { return c.httpClient.GET(ctx, path) }, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *PhoneInputClient) Create(ctx context.Context, country string) (*model.PhoneInputState, error) {
	var out envelope[model.PhoneInputState]
	body := model.CreatePhoneInputRequest{Country: country}
	if err := c.do(func() (*Response, error) { return c.httpClient.POST(ctx, "/api/v1/phone-inputs", body) }, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *PhoneInputClient) GetByID(ctx context.Context, id string) (*model.PhoneInputState, error) {
	var out envelope[model.PhoneInputState]
	if err := c.do(func() (*Response, error) { return c.httpClient.GET(ctx, sessionPath(id)) }, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *PhoneInputClient) SelectCountry(ctx context.Context, id, country string) (*model.PhoneInputState, error) {
	var out envelope[model.PhoneInputState]
	body := model.SelectCountryRequest{Country: country}
	if err := c.do(func() (*Response, error) { return c.httpClient.PUT(ctx, sessionPath(id)+"/country", body) }, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *PhoneInputClient) ApplyKeystroke(ctx context.Context, id, value string) (*model.KeystrokeResult, error) {
	var out envelope[model.KeystrokeResult]
	body := model.KeystrokeRequest{Value: &value}
	if err := c.do(func() (*Response, error) { return c.httpClient.POST(ctx, sessionPath(id)+"/keystrokes", body) }, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *PhoneInputClient) Delete(ctx context.Context, id string) error {
	return c.do(func() (*Response, error) { return c.httpClient.DELETE(ctx, sessionPath(id)) }, nil)
}

func (c *PhoneInputClient) do(call func() (*Response, error), target any) error {
	resp, err := call()
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if target == nil || len(resp.Body) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Body, target)
}

func sessionPath(id string) string {
	return "/api/v1/phone-inputs/" + url.PathEscape(id)
}
