package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"pillziy/pkg/client"
	"pillziy/pkg/locale"
	"pillziy/pkg/model"
	"pillziy/pkg/phoneinput"
	"pillziy/pkg/sanitizer"
)

type formatRow struct {
	Input     string `json:"input" yaml:"input"`
	Accepted  bool   `json:"accepted" yaml:"accepted"`
	Rejection string `json:"rejection,omitempty" yaml:"rejection,omitempty"`
	Display   string `json:"display" yaml:"display"`
	Value     string `json:"value" yaml:"value"`
	State     string `json:"state" yaml:"state"`
	Valid     bool   `json:"valid" yaml:"valid"`
	E164      string `json:"e164,omitempty" yaml:"e164,omitempty"`
}

func newFormatRow(raw string, res *model.KeystrokeResult) formatRow {
	row := formatRow{
		Input:     raw,
		Accepted:  res.Accepted,
		Rejection: res.Rejection.String(),
		Display:   res.Display,
		Value:     res.Value,
		State:     res.State.String(),
		Valid:     res.Valid,
	}
	if res.Valid {
		row.E164 = sanitizer.NormalizePhone(res.Value)
	}
	return row
}

// session is one phone field, held locally or by the API.
type session interface {
	apply(ctx context.Context, raw string) (*model.KeystrokeResult, error)
	display() string
	close(ctx context.Context) error
}

type localSession struct {
	in *phoneinput.Input
}

func (s *localSession) apply(_ context.Context, raw string) (*model.KeystrokeResult, error) {
	return model.NewKeystrokeResult(s.in.ApplyKeystroke(raw)), nil
}

func (s *localSession) display() string { return s.in.Display() }

func (s *localSession) close(context.Context) error { return nil }

type remoteSession struct {
	client *client.PhoneInputClient
	id     string
	last   string
}

func (s *remoteSession) apply(ctx context.Context, raw string) (*model.KeystrokeResult, error) {
	res, err := s.client.ApplyKeystroke(ctx, s.id, raw)
	if err != nil {
		return nil, err
	}
	s.last = res.Display
	return res, nil
}

func (s *remoteSession) display() string { return s.last }

func (s *remoteSession) close(ctx context.Context) error {
	return s.client.Delete(ctx, s.id)
}

func newFormatCmd(opts *options, resolve resolveFunc) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "format <number>...",
		Short: "Run numbers through the phone input",
		Long: `Run each number through a fresh phone input for the selected country and
print what the field would show.

With --trace the number is typed one character at a time into a single input,
so every intermediate state is printed, including rejected keystrokes. With
--server the inputs live in a running phone input API instead of this process.`,
		Example: `  phonectl format --country GB 07400123456
  phonectl format --trace "(201) 555-0123"
  phonectl format --server http://localhost:8080 --country DE 030123456`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := resolve(cmd)
			if err != nil {
				return err
			}
			country, err := lookupCountry(deps.Countries, opts.country)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var api *client.PhoneInputClient
			if opts.server != "" {
				api = client.NewPhoneInputClient(opts.server)
			}

			var rows []formatRow
			for _, raw := range args {
				s, err := openSession(ctx, api, deps, country)
				if err != nil {
					return err
				}
				steps, err := typeInto(ctx, s, raw, trace)
				if closeErr := s.close(ctx); closeErr != nil {
					deps.Log.Warn("Failed to close phone input", "error", closeErr)
				}
				if err != nil {
					return err
				}
				rows = append(rows, steps...)
			}

			return render(cmd.OutOrStdout(), opts.output, rows, func(table *tablewriter.Table) error {
				table.Header("Input", "Accepted", "Display", "Value", "State", "Valid")
				for _, r := range rows {
					accepted := strconv.FormatBool(r.Accepted)
					if r.Rejection != "" {
						accepted = fmt.Sprintf("no (%s)", r.Rejection)
					}
					if err := table.Append(r.Input, accepted, r.Display, r.Value, r.State, strconv.FormatBool(r.Valid)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "type the number one character at a time")
	return cmd
}

func openSession(ctx context.Context, api *client.PhoneInputClient, deps Deps, country locale.Country) (session, error) {
	if api == nil {
		return &localSession{in: phoneinput.New(deps.Engine, country, phoneinput.WithLogger(deps.Log))}, nil
	}
	state, err := api.Create(ctx, country.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote phone input: %w", err)
	}
	return &remoteSession{client: api, id: state.ID, last: state.Display}, nil
}

// typeInto sends raw as one edit, or with trace one character at a time on
// top of the last accepted display, as a text field would.
func typeInto(ctx context.Context, s session, raw string, trace bool) ([]formatRow, error) {
	if !trace {
		res, err := s.apply(ctx, raw)
		if err != nil {
			return nil, err
		}
		return []formatRow{newFormatRow(raw, res)}, nil
	}

	var rows []formatRow
	for _, r := range raw {
		next := s.display() + string(r)
		res, err := s.apply(ctx, next)
		if err != nil {
			return nil, err
		}
		rows = append(rows, newFormatRow(next, res))
	}
	return rows, nil
}
