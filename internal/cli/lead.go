package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"pillziy/internal/leads/form"
	"pillziy/internal/leads/validator"
	apperrors "pillziy/pkg/errors"
	"pillziy/pkg/phoneinput"
)

func newLeadCmd(opts *options, resolve resolveFunc) *cobra.Command {
	var (
		variant string
		values  = map[form.Field]*string{}
		phone   string
	)

	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Fill in and submit a lead form offline",
		Long: `Fill in one of the site's lead forms ("contact" or "demo") and print the
normalized submission. The phone number goes through the same phone input as
on the site; nothing is sent anywhere.`,
		Example: `  phonectl lead --variant demo --country GB --phone 07400123456 \
    --org-name "Acme Pharmacy" --full-name "Jo Bloggs" --email jo@acme.test \
    --role Pharmacist --org-type Pharmacy -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := resolve(cmd)
			if err != nil {
				return err
			}
			v, ok := form.VariantByName(variant)
			if !ok {
				return fmt.Errorf("unknown form variant %q (want contact or demo)", variant)
			}

			f := form.New(form.Config{
				Variant:   v,
				Countries: deps.Countries,
				Engine:    deps.Engine,
				Log:       deps.Log,
			})
			defer f.Close()

			for field, value := range values {
				if err := f.Set(field, *value); err != nil {
					return err
				}
			}

			if opts.country != "" {
				country, err := lookupCountry(deps.Countries, opts.country)
				if err != nil {
					return err
				}
				f.SelectPhoneCountry(country)
			}
			if phone != "" {
				if res := f.ApplyPhoneKeystroke(phone); !res.Accepted {
					return phoneRejected(res)
				}
			}

			submission, err := f.Submit()
			if err != nil {
				return describeSubmitError(err)
			}

			lead := submission.Lead
			return render(cmd.OutOrStdout(), opts.output, submission, func(table *tablewriter.Table) error {
				table.Header("Field", "Value")
				for _, row := range [][2]string{
					{"Variant", submission.Variant},
					{"Organization", lead.OrgName},
					{"Name", lead.FullName},
					{"Work email", lead.WorkEmail},
					{"Role", lead.Role},
					{"Organization type", lead.OrgType},
					{"Phone", lead.Phone},
				} {
					if err := table.Append(row[0], row[1]); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&variant, "variant", form.Contact.Name, "form variant (contact, demo)")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number as typed into the field")
	for _, f := range []struct {
		field form.Field
		flag  string
		usage string
	}{
		{form.FieldOrgName, "org-name", "organization name"},
		{form.FieldFullName, "full-name", "full name"},
		{form.FieldWorkEmail, "email", "work email"},
		{form.FieldRole, "role", "role"},
		{form.FieldOrgType, "org-type", "organization type"},
	} {
		values[f.field] = cmd.Flags().String(f.flag, "", f.usage)
	}

	return cmd
}

func phoneRejected(res phoneinput.Result) error {
	switch res.Rejection {
	case phoneinput.InvalidCharacter:
		return errors.New("phone: only digits, spaces, ( ) + and - are allowed")
	case phoneinput.TooLong:
		return errors.New("phone: number is too long for the selected country")
	default:
		return fmt.Errorf("phone: rejected (%s)", res.Rejection)
	}
}

// describeSubmitError flattens validation details into one readable error.
func describeSubmitError(err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return err
	}
	verrs, ok := appErr.Details["errors"].([]validator.ValidationError)
	if !ok || len(verrs) == 0 {
		return err
	}
	messages := make([]string, 0, len(verrs))
	for _, v := range verrs {
		messages = append(messages, v.Error())
	}
	return fmt.Errorf("%s: %s", appErr.Message, strings.Join(messages, "; "))
}
