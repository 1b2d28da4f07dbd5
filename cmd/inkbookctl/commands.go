package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"inkbook/client"
	"inkbook/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List booked slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			bookings, err := opts.client().List(ctx)
			if err != nil {
				return err
			}
			models.SortBookings(bookings)
			printBookings(cmd.OutOrStdout(), bookings)
			return nil
		},
	}
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle DATE TIME",
		Short: "Flip a slot between booked and available",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			booked, err := opts.client().Toggle(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			state := "available"
			if booked {
				state = "booked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", args[0], args[1], state)
			return nil
		},
	}
}

func newDiagCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diag",
		Short: "Show which slot store the server uses and whether it is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			d, err := opts.client().Diagnostics(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backend=%s shared=%t reachable=%t\n", d.Backend, d.BackendConfigured, d.Reachable)
			return nil
		},
	}
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var interval time.Duration
	c := &cobra.Command{
		Use:   "watch",
		Short: "Poll the booked slots and print the list whenever it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cache := client.NewSlotCache(opts.client(), interval, logger)
			go cache.Run(ctx)

			out := cmd.OutOrStdout()
			var last string
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					bookings := cache.Bookings()
					snapshot := fmt.Sprint(cache.Demo(), bookings)
					if snapshot == last {
						continue
					}
					last = snapshot
					if cache.Demo() {
						fmt.Fprintln(out, "(server unreachable, showing demo slots)")
					}
					printBookings(out, bookings)
				}
			}
		},
	}
	c.Flags().DurationVar(&interval, "interval", client.DefaultPollInterval, "poll interval")
	return c
}

func printBookings(w io.Writer, bookings []models.Booking) {
	if len(bookings) == 0 {
		fmt.Fprintln(w, "no booked slots")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTIME")
	for _, b := range bookings {
		fmt.Fprintf(tw, "%s\t%s\n", b.Date, b.Time)
	}
	tw.Flush()
}
