package main

import (
	"os"
	"time"

	"inkbook/client"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	baseURL string
	token   string
	timeout time.Duration
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.baseURL, nil).WithToken(o.token)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "inkbookctl",
		Short:        "Inspect and edit booked slots on an inkbook server",
		SilenceUsage: true,
	}

	defaultURL := os.Getenv("INKBOOK_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3001/api"
	}
	root.PersistentFlags().StringVar(&opts.baseURL, "url", defaultURL, "API base URL (env INKBOOK_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("INKBOOK_TOKEN"), "admin session token (env INKBOOK_TOKEN)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-command timeout")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newToggleCmd(opts))
	root.AddCommand(newDiagCmd(opts))
	root.AddCommand(newWatchCmd(opts))
	return root
}
