package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kkapil94/outflo-assignment/internal/client"
	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallelGets bounds concurrent requests for `campaigns get`
const maxParallelGets = 4

func newCampaignsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "campaigns",
		Aliases: []string{"campaign", "c"},
		Short:   "List, create and edit campaigns",
	}
	cmd.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newToggleCmd(a),
		newDeleteCmd(a),
	)
	return cmd
}

// storeErr turns the store's recorded failure into a command error
func storeErr(s *client.CampaignStore) error {
	if msg := s.Err(); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns that are not deleted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.store.FetchAll(cmd.Context())
			if err := storeErr(a.store); err != nil {
				return err
			}

			campaigns := a.store.Campaigns()
			if len(campaigns) == 0 {
				fmt.Fprintln(a.out, mutedStyle.Render("No campaigns yet"))
				return nil
			}
			for _, c := range campaigns {
				printCampaign(a.out, c)
			}
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id...]",
		Short: "Show one or more campaigns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]*models.Campaign, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxParallelGets)
			for i, id := range args {
				i, id := i, id
				g.Go(func() error {
					if c := a.store.GetOne(ctx, id); c != nil {
						results[i] = c
					}
					return nil
				})
			}
			_ = g.Wait()

			var missing []string
			for i, c := range results {
				if c == nil {
					missing = append(missing, args[i])
					continue
				}
				printCampaign(a.out, c)
			}
			if len(missing) > 0 {
				return fmt.Errorf("could not fetch %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

type formFlags struct {
	name        string
	description string
	status      string
	leads       []string
	accounts    []string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "campaign name")
	cmd.Flags().StringVar(&f.description, "description", "", "campaign description")
	cmd.Flags().StringVar(&f.status, "status", "", "ACTIVE or INACTIVE")
	cmd.Flags().StringArrayVar(&f.leads, "lead", nil, "LinkedIn profile URL (repeatable)")
	cmd.Flags().StringArrayVar(&f.accounts, "account", nil, "account id (repeatable)")
}

// apply copies the flags the user set onto the form
func (f *formFlags) apply(cmd *cobra.Command, form *client.CampaignForm) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		form.Name = f.name
	}
	if flags.Changed("description") {
		form.Description = f.description
	}
	if flags.Changed("status") {
		status, err := models.ParseCampaignStatus(strings.ToUpper(f.status))
		if err != nil {
			return err
		}
		form.Status = status
	}
	if flags.Changed("lead") {
		form.LeadsInput = strings.Join(f.leads, "\n")
	}
	if flags.Changed("account") {
		form.AccountsInput = strings.Join(f.accounts, "\n")
	}
	return nil
}

func newCreateCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a campaign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := client.NewCampaignForm()
			if err := flags.apply(cmd, &form); err != nil {
				return err
			}

			var created *models.Campaign
			err := form.Submit(cmd.Context(), func(ctx context.Context, f client.CampaignForm) error {
				created = a.store.Create(ctx, f.CreateInput())
				return storeErr(a.store)
			})
			if err != nil {
				return err
			}
			printCampaign(a.out, created)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Edit a campaign; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			current := a.store.GetOne(cmd.Context(), id)
			if current == nil {
				return storeErr(a.store)
			}

			form := client.FormFromCampaign(current)
			if err := flags.apply(cmd, &form); err != nil {
				return err
			}

			var updated *models.Campaign
			err := form.Submit(cmd.Context(), func(ctx context.Context, f client.CampaignForm) error {
				updated = a.store.Update(ctx, id, f.Patch())
				return storeErr(a.store)
			})
			if err != nil {
				return err
			}
			printCampaign(a.out, updated)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	var server bool
	cmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Switch a campaign between ACTIVE and INACTIVE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if server {
				c, err := a.api.ToggleCampaignStatus(cmd.Context(), id)
				if err != nil {
					return err
				}
				printCampaign(a.out, c)
				return nil
			}

			current := a.store.GetOne(cmd.Context(), id)
			if current == nil {
				return storeErr(a.store)
			}
			c := a.store.ToggleStatus(cmd.Context(), id, current.Status)
			if c == nil {
				return storeErr(a.store)
			}
			printCampaign(a.out, c)
			return nil
		},
	}
	cmd.Flags().BoolVar(&server, "server", false, "let the server compute the new status")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Soft-delete a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.store.Delete(cmd.Context(), args[0]) {
				return storeErr(a.store)
			}
			fmt.Fprintf(a.out, "%d campaign(s) remaining\n", len(a.store.Campaigns()))
			return nil
		},
	}
}
