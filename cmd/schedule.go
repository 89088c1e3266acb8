package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/meysamhadeli/doctrans/constants/lipgloss"
	"github.com/meysamhadeli/doctrans/utils"
	"github.com/spf13/cobra"
)

// scheduleCmd: doctrans schedule
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Resolve translatable files periodically",
	Long: `The 'schedule' subcommand resolves the translatable files on a cron schedule
(schedule.cron, in schedule.timezone) over the last schedule.days days and
logs each result until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		if spec, _ := cmd.Flags().GetString("cron"); spec != "" {
			rootDependencies.Config.Schedule.Cron = spec
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return handleScheduleCommand(ctx, cmd, rootDependencies)
	},
}

func init() {
	scheduleCmd.Flags().String("cron", "", "Cron spec overriding schedule.cron")

	rootCmd.AddCommand(scheduleCmd)
}

func handleScheduleCommand(ctx context.Context, cmd *cobra.Command, deps *RootDependencies) error {
	if err := deps.Git.CheckGitRepo(ctx); err != nil {
		return err
	}

	scheduler, err := utils.NewScheduler(deps.Config.Schedule.Timezone)
	if err != nil {
		return err
	}

	days := deps.Config.Schedule.Days
	logger := deps.Logger
	job := func() {
		report, err := deps.Coordinator.Report(ctx, days)
		if err != nil {
			logger.Error("scheduled resolution failed", logger.Args("error", err))
			return
		}
		logger.Info("scheduled resolution", logger.Args(
			"eligible", len(report.Eligible),
			"changed", len(report.Decisions),
			"fingerprint", report.Fingerprint(),
		))
		for _, path := range report.Eligible {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	}
	if err := scheduler.Schedule(deps.Config.Schedule.Cron, job); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), lipgloss.BoxStyle.Render(fmt.Sprintf(
		"Scheduled %q (%s), next run %s. Press Ctrl+C to stop.",
		deps.Config.Schedule.Cron, deps.Config.Schedule.Timezone, scheduler.Next().Format("2006-01-02 15:04 MST"))))

	scheduler.Run(ctx)
	fmt.Fprintln(cmd.ErrOrStderr(), lipgloss.Yellow.Render("🔄 Exiting..."))
	return nil
}
