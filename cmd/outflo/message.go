package main

import (
	"errors"
	"fmt"

	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/spf13/cobra"
)

func newMessageCmd(a *app) *cobra.Command {
	var profile models.LinkedInProfile
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Draft a personalized LinkedIn connection message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := a.messages.Generate(cmd.Context(), profile)
			if msg == nil {
				return errors.New(a.messages.Err())
			}
			fmt.Fprintln(a.out, messageStyle.Render(msg.Message))
			return nil
		},
	}

	cmd.Flags().StringVar(&profile.Name, "name", "", "full name")
	cmd.Flags().StringVar(&profile.JobTitle, "job-title", "", "current job title")
	cmd.Flags().StringVar(&profile.Company, "company", "", "current company")
	cmd.Flags().StringVar(&profile.Location, "location", "", "location")
	cmd.Flags().StringVar(&profile.Summary, "summary", "", "profile summary")
	return cmd
}
