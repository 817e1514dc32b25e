package cmd

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bnema/poe2-chicken-bot/internal/adapters/display"
	"github.com/bnema/poe2-chicken-bot/internal/application"
	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	var (
		resourceFlag  string
		thresholdFlag int64
		dashboardFlag bool
		processFlag   string
		windowFlag    string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Monitor the selected resource and escape below threshold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := domain.ParseResourceKey(resourceFlag)
			if err != nil {
				return err
			}

			thresholds, err := app.thresholds.Load(cmd.Context())
			if err != nil {
				return err
			}
			thresholdText := strconv.FormatInt(thresholds[key], 10)
			if cmd.Flags().Changed("threshold") {
				thresholdText = strconv.FormatInt(thresholdFlag, 10)
			}

			cfg := application.MonitorConfig{
				ProcessName: processFlag,
				WindowTitle: windowFlag,
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if dashboardFlag {
				var monitor *application.Monitor
				sink := display.NewDashboard(key, thresholdText,
					func() error { return monitor.Start(ctx) },
					func() { monitor.Stop() },
				)
				monitor = application.NewMonitor(cfg, app.resources, app.opener, app.windows, app.keys, sink, app.clock, app.log)
				return sink.Run()
			}

			sink := app.newConsoleSink(key, thresholdText)
			monitor := application.NewMonitor(cfg, app.resources, app.opener, app.windows, app.keys, sink, app.clock, app.log)
			if err := monitor.Start(ctx); err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				monitor.Stop()
				<-monitor.Done()
			case <-monitor.Done():
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&resourceFlag, "resource", "r", string(domain.ResourceHP), "resource to watch (hp, mp, ms)")
	cmd.Flags().Int64VarP(&thresholdFlag, "threshold", "t", 0, "threshold override for this session")
	cmd.Flags().BoolVar(&dashboardFlag, "dashboard", false, "show a live dashboard instead of plain output")
	cmd.Flags().StringVar(&processFlag, "process", app.processName, "target process executable name")
	cmd.Flags().StringVar(&windowFlag, "window", app.windowTitle, "exact game window title")

	return cmd
}
