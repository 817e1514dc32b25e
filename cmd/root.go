package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chicken",
		Short:         "PoE2 chicken bot: escape when a resource drops below threshold",
		Long:          "chicken watches a Path of Exile 2 resource (HP, mana or energy shield) in the game's memory and posts an escape key to the game window when the value falls below your threshold, blocking ESC and SPACE for two seconds so a frantic keypress cannot cancel it.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newWatchCmd(app),
		newResourcesCmd(app),
		newThresholdsCmd(app),
	)

	return rootCmd
}
