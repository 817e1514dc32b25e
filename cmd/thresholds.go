package cmd

import (
	"fmt"
	"strconv"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newThresholdsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thresholds",
		Short: "Read or persist the per-resource escape thresholds",
	}

	cmd.AddCommand(newThresholdsGetCmd(app), newThresholdsSetCmd(app))

	return cmd
}

func newThresholdsGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [resource]",
		Short: "Print the persisted thresholds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thresholds, err := app.thresholds.Load(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				key, err := domain.ParseResourceKey(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), thresholds[key])
				return err
			}

			for _, key := range domain.Keys() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", key, thresholds[key]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newThresholdsSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <resource> <value>",
		Short: "Persist a threshold for a resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := domain.ParseResourceKey(args[0])
			if err != nil {
				return err
			}

			value, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("parse threshold %q: %w", args[1], err)
			}

			thresholds, err := app.thresholds.Load(cmd.Context())
			if err != nil {
				return err
			}
			thresholds[key] = value

			if err := app.thresholds.Save(cmd.Context(), thresholds); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", key, value)
			return err
		},
	}
}
