package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type resourceOutput struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Base      string   `json:"base"`
	Offsets   []string `json:"offsets"`
	Threshold int64    `json:"threshold"`
}

func newResourcesCmd(app *app) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List the configured pointer chains and thresholds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs, err := app.resources.List(cmd.Context())
			if err != nil {
				return err
			}

			thresholds, err := app.thresholds.Load(cmd.Context())
			if err != nil {
				return err
			}

			if jsonFlag {
				output := make([]resourceOutput, 0, len(specs))
				for _, spec := range specs {
					threshold := spec.Threshold
					if value, ok := thresholds[spec.Key]; ok {
						threshold = value
					}
					offsets := make([]string, 0, len(spec.Offsets))
					for _, offset := range spec.Offsets {
						offsets = append(offsets, fmt.Sprintf("%#x", offset))
					}
					output = append(output, resourceOutput{
						Key:       string(spec.Key),
						Label:     spec.Key.Label(),
						Base:      fmt.Sprintf("0x%08x", spec.Base),
						Offsets:   offsets,
						Threshold: threshold,
					})
				}

				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(output)
			}

			rendered, err := app.renderResources(specs, thresholds)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "emit JSON instead of styled output")

	return cmd
}
