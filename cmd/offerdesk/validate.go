package main

import (
	"errors"
	"fmt"

	. "offerdesk/internal/models"
	"offerdesk/internal/validation"

	"github.com/spf13/cobra"
)

var errInvalidContact = errors.New("contact fields are invalid")

func (c *cli) validateContactCmd() *cobra.Command {
	var fields ContactFields

	cmd := &cobra.Command{
		Use:   "validate-contact",
		Short: "Check contact form values without sending them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			errs := validation.ValidateContact(fields)
			out := cmd.OutOrStdout()
			if !errs.HasErrors() {
				fmt.Fprintln(out, "ok")
				return nil
			}
			for _, name := range ContactFieldNames {
				if msg, ok := errs[name]; ok {
					fmt.Fprintf(out, "%s: %s\n", name, msg)
				}
			}
			return errInvalidContact
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&fields.Name, "name", "", "full name")
	flags.StringVar(&fields.Email, "email", "", "email address")
	flags.StringVar(&fields.Phone, "phone", "", "phone number")
	flags.StringVar(&fields.Message, "message", "", "message text")

	return cmd
}
