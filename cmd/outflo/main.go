package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kkapil94/outflo-assignment/internal/client"
	"github.com/kkapil94/outflo-assignment/pkg/campaignapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app is the state shared by every subcommand
type app struct {
	apiURL  string
	verbose bool

	out    io.Writer
	errOut io.Writer
	logger *zap.Logger

	api      *campaignapi.Client
	store    *client.CampaignStore
	messages *client.MessageGenerator
}

func defaultAPIURL() string {
	if v := os.Getenv("OUTFLO_API_URL"); v != "" {
		return v
	}
	return campaignapi.DefaultBaseURL
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "outflo",
		Short:         "Manage outreach campaigns and draft LinkedIn messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				config := zap.NewDevelopmentConfig()
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				config.OutputPaths = []string{"stderr"}
				logger, err := config.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				a.logger = logger
			}

			a.api = campaignapi.NewClient(a.apiURL)
			notifier := multiNotifier{newToastNotifier(a.errOut), client.NewLogNotifier(a.logger)}
			a.store = client.NewCampaignStore(a.api, notifier)
			a.messages = client.NewMessageGenerator(a.api, notifier)
			a.logger.Debug("API client ready", zap.String("url", a.apiURL))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", defaultAPIURL(), "base URL of the campaign API (including /api)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(newCampaignsCmd(a), newMessageCmd(a))
	return root
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
